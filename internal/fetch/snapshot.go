package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mandi/internal/models"
	"mandi/internal/parser"
)

// SnapshotProvider serves rows from page snapshots saved by a previous
// live run. A missing snapshot file means the source had nothing for the
// crop, not an error, so reconciliation can still proceed.
type SnapshotProvider struct {
	dir string
}

// NewSnapshotProvider reads snapshots from dir.
func NewSnapshotProvider(dir string) *SnapshotProvider {
	return &SnapshotProvider{dir: dir}
}

// PrimaryRows parses the saved MSAMB page for the crop.
func (p *SnapshotProvider) PrimaryRows(_ context.Context, crop models.Crop) ([]models.RawRow, error) {
	if !crop.HasMSAMB() {
		return nil, nil
	}

	return p.load("msamb", crop.ID, parser.MSAMBRows)
}

// SecondaryRows parses the saved listing page for the crop.
func (p *SnapshotProvider) SecondaryRows(_ context.Context, crop models.Crop) ([]models.RawRow, error) {
	return p.load("commodityonline", crop.ID, parser.ListingRows)
}

func (p *SnapshotProvider) load(source, cropID string, extract func(string) ([]models.RawRow, error)) ([]models.RawRow, error) {
	path := filepath.Join(p.dir, fmt.Sprintf("%s_%s.html", source, cropID))

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	rows, err := extract(string(data))
	if errors.Is(err, parser.ErrNoPriceTable) || errors.Is(err, parser.ErrEmptyPage) {
		return nil, nil
	}

	return rows, err
}
