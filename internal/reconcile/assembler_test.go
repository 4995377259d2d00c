package reconcile

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"mandi/internal/logger"
	"mandi/internal/models"
)

var errSourceDown = errors.New("source down")

// stubProvider serves canned rows per crop and source.
type stubProvider struct {
	primary      map[string][]models.RawRow
	secondary    map[string][]models.RawRow
	primaryErr   error
	secondaryErr error
}

func (s *stubProvider) PrimaryRows(_ context.Context, crop models.Crop) ([]models.RawRow, error) {
	if s.primaryErr != nil {
		return nil, s.primaryErr
	}

	return s.primary[crop.ID], nil
}

func (s *stubProvider) SecondaryRows(_ context.Context, crop models.Crop) ([]models.RawRow, error) {
	if s.secondaryErr != nil {
		return nil, s.secondaryErr
	}

	return s.secondary[crop.ID], nil
}

func onionRows() []models.RawRow {
	return []models.RawRow{
		{Cells: []string{"Trade Date: 01-01-2024"}, Colspan: true},
		{Cells: []string{"पुणे- मंडई", "Red", "Quintal", "120", "1500", "2000", "1800"}},
	}
}

func onionListingRows() []models.RawRow {
	return []models.RawRow{
		{Cells: []string{"Onion", "01/01/2024", "Red", "Maharashtra", "Satara", "Satara", "2,000", "2,400", "₹ 2,200"}},
		{Cells: []string{"Onion", "01/01/2024", "Red", "Madhya Pradesh", "Indore", "Indore", "1,800", "2,100", "₹ 1,950"}},
	}
}

func newTestAssembler(provider RowProvider) *Assembler {
	return NewAssembler(
		[]models.Crop{onionCrop},
		testMatcher(),
		provider,
		logger.NewLogger("error"),
	)
}

func TestAssemble_EndToEnd(t *testing.T) {
	provider := &stubProvider{
		primary:   map[string][]models.RawRow{"onion": onionRows()},
		secondary: map[string][]models.RawRow{"onion": onionListingRows()},
	}

	dataset := newTestAssembler(provider).Assemble(context.Background())

	result, ok := dataset.Crops["onion"]
	if !ok {
		t.Fatal("onion missing from dataset")
	}

	if result.Status != models.StatusFull {
		t.Errorf("Status = %s, want full", result.Status)
	}

	want := models.PriceRecord{
		ModalPrice: 1800,
		MinPrice:   1500,
		MaxPrice:   2000,
		Arrival:    120,
		Variety:    "Red",
		TradeDate:  "Trade Date: 01-01-2024",
	}
	if got := result.Local["पुणे"]; !reflect.DeepEqual(got, want) {
		t.Errorf("local[पुणे] = %+v, want %+v", got, want)
	}

	// सातारा was missing from MSAMB and filled by fallback.
	fallback := result.Local["सातारा"]
	if fallback.ModalPrice != 2200 || fallback.TradeDate != "" || fallback.MinPrice != 0 {
		t.Errorf("fallback entry = %+v, want modal 2200 with no primary-only fields", fallback)
	}

	if got := result.Outstate["Indore"]; got.ModalPrice != 1950 {
		t.Errorf("outstate[Indore].ModalPrice = %d, want 1950", got.ModalPrice)
	}

	if dataset.Meta == nil || dataset.Meta.Timestamp.IsZero() {
		t.Error("dataset metadata not populated")
	}

	if dataset.LocalEntries() != 2 || dataset.OutstateEntries() != 1 {
		t.Errorf("entries = %d local / %d outstate, want 2/1",
			dataset.LocalEntries(), dataset.OutstateEntries())
	}
}

func TestAssemble_PrimaryFailureDegradesToPartial(t *testing.T) {
	provider := &stubProvider{
		primaryErr: errSourceDown,
		secondary:  map[string][]models.RawRow{"onion": onionListingRows()},
	}

	dataset := newTestAssembler(provider).Assemble(context.Background())

	result := dataset.Crops["onion"]
	if result.Status != models.StatusPartial {
		t.Errorf("Status = %s, want partial", result.Status)
	}

	// The secondary source still delivered its entries.
	if len(result.Local) == 0 && len(result.Outstate) == 0 {
		t.Error("partial run produced no entries at all")
	}
}

func TestAssemble_BothSourcesFailingYieldsEmptyCrop(t *testing.T) {
	provider := &stubProvider{
		primaryErr:   errSourceDown,
		secondaryErr: errSourceDown,
	}

	dataset := newTestAssembler(provider).Assemble(context.Background())

	result := dataset.Crops["onion"]
	if result.Status != models.StatusEmpty {
		t.Errorf("Status = %s, want empty", result.Status)
	}

	if result.Entries() != 0 {
		t.Errorf("Entries = %d, want 0", result.Entries())
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	provider := &stubProvider{
		primary:   map[string][]models.RawRow{"onion": onionRows()},
		secondary: map[string][]models.RawRow{"onion": onionListingRows()},
	}

	asm := newTestAssembler(provider)

	first := asm.Assemble(context.Background())
	second := asm.Assemble(context.Background())

	if !reflect.DeepEqual(first.Crops["onion"].Local, second.Crops["onion"].Local) {
		t.Error("repeated assembly produced different local maps")
	}

	if !reflect.DeepEqual(first.Crops["onion"].Outstate, second.Crops["onion"].Outstate) {
		t.Error("repeated assembly produced different outstate maps")
	}
}

func TestValidateDataset(t *testing.T) {
	provider := &stubProvider{
		primary:   map[string][]models.RawRow{"onion": onionRows()},
		secondary: map[string][]models.RawRow{"onion": onionListingRows()},
	}

	dataset := newTestAssembler(provider).Assemble(context.Background())

	result := ValidateDataset(dataset, []models.Crop{onionCrop})
	if !result.IsValid {
		t.Errorf("expected valid dataset, got errors: %v", result.Errors)
	}
}

func TestValidateDataset_MissingCrop(t *testing.T) {
	dataset := &models.Dataset{Crops: map[string]*models.CropResult{}}

	result := ValidateDataset(dataset, []models.Crop{onionCrop})
	if result.IsValid {
		t.Error("expected validation errors for missing crop")
	}
}
