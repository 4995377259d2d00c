package config

import (
	"mandi/internal/models"
)

// Default returns the built-in configuration: the tracked crop set, the
// target Maharashtra APMC markets, the English→Marathi market aliases,
// and sensible scrape settings. configs/scraper.yaml carries the same
// data for deployments that want to override it.
func Default() *Config {
	return &Config{
		Scraper: ScraperConfig{
			Sources: SourcesConfig{
				MSAMB: SourceConfig{
					URL:        "https://www.msamb.com/ApmcDetail/APMCPriceInformation",
					SettleSec:  1.5,
					TimeoutSec: 15,
					Enabled:    true,
				},
				CommodityOnline: SourceConfig{
					URL:        "https://www.commodityonline.com",
					SettleSec:  1.0,
					TimeoutSec: 20,
					Enabled:    true,
				},
			},
			Browser: BrowserConfig{
				Headless:      true,
				NavTimeoutSec: 30,
			},
			Output: OutputConfig{
				BasePath:     "data",
				PrettyPrint:  true,
				CreateBackup: false,
			},
			History: HistoryConfig{
				Path:    "data/history.db",
				Enabled: true,
			},
			Logging: LoggingConfig{
				Level:        "info",
				ShowProgress: true,
			},
		},
		Markets: MarketsConfig{
			Local: []string{
				"अहिल्यानगर", "राहता", "राहुरी", "आळेफाटा", "संगमनेर", "लासलगाव",
				"पुणे", "सोलापूर", "नागपूर", "मुंबई", "लातूर", "अकोला", "अमरावती",
				"वाशिम", "हिंगणघाट", "यवतमाळ", "जळगाव", "जालना", "पिंपळगाव",
				"नारायणगाव", "सांगोला", "पंढरपूर", "सटाणा", "बारामती", "तळेगाव",
				"सातारा", "कल्याण",
			},
			Aliases: map[string]string{
				"ahilyanagar": "अहिल्यानगर",
				"nashik":      "नाशिक",
				"sangamner":   "संगमनेर",
				"lasalgaon":   "लासलगाव",
				"pune":        "पुणे",
				"solapur":     "सोलापूर",
				"nagpur":      "नागपूर",
				"mumbai":      "मुंबई",
				"latur":       "लातूर",
				"akola":       "अकोला",
				"amravati":    "अमरावती",
				"washim":      "वाशिम",
				"hinganghat":  "हिंगणघाट",
				"yavatmal":    "यवतमाळ",
				"jalgaon":     "जळगाव",
				"jalna":       "जालना",
				"pimpalgaon":  "पिंपळगाव",
				"narayangaon": "नारायणगाव",
				"sangola":     "सांगोला",
				"pandharpur":  "पंढरपूर",
				"satana":      "सटाणा",
				"baramati":    "बारामती",
				"talegaon":    "तळेगाव",
				"satara":      "सातारा",
				"kalyan":      "कल्याण",
				"rahata":      "राहता",
				"rahuri":      "राहुरी",
				"alephata":    "आळेफाटा",
			},
			RegionNames: []string{"maharashtra", "maharastra", "mh"},
		},
		Crops: []models.Crop{
			{ID: "onion", Name: "Onion", Marathi: "कांदा", MSAMBValue: "08035", CommodityOnlineID: "onion"},
			{ID: "soyabean", Name: "Soybean", Marathi: "सोयाबीन", MSAMBValue: "04017", CommodityOnlineID: "soyabean"},
			{ID: "cotton", Name: "Cotton", Marathi: "कापूस", MSAMBValue: "01001", CommodityOnlineID: "cotton"},
			{ID: "maize", Name: "Maize", Marathi: "मका", MSAMBValue: "02015", CommodityOnlineID: "maize"},
			{ID: "wheat", Name: "Wheat", Marathi: "गहू", MSAMBValue: "02009", CommodityOnlineID: "wheat"},
			{ID: "arhar-turred-gram-whole", Name: "Tur", Marathi: "तूर", MSAMBValue: "03020", CommodityOnlineID: "arhar-turred-gram-whole"},
			{ID: "bengal-gram-gram-whole", Name: "Harbara", Marathi: "हरभरा", MSAMBValue: "03006", CommodityOnlineID: "bengal-gram-gram-whole"},
			{ID: "tomato", Name: "Tomato", Marathi: "टोमॅटो", MSAMBValue: "08071", CommodityOnlineID: "tomato"},
			{ID: "pomegranate", Name: "Pomegranate", Marathi: "डाळिंब", MSAMBValue: "07007", CommodityOnlineID: "pomegranate"},
			{ID: "garlic", Name: "Garlic", Marathi: "लसूण", MSAMBValue: "08045", CommodityOnlineID: "garlic"},
			{ID: "marigold-calcutta", Name: "Marigold", Marathi: "झेंडू", MSAMBValue: "16009", CommodityOnlineID: "marigold-calcutta"},
			{ID: "rose-local", Name: "Rose", Marathi: "गुलाब", MSAMBValue: "16003", CommodityOnlineID: "rose-local"},
			{ID: "green-chilli", Name: "Green Chilli", Marathi: "हिरवी मिरची", MSAMBValue: "10013", CommodityOnlineID: "green-chilli"},
			// Cocoon is not tracked by MSAMB; CommodityOnline is its sole provider.
			{ID: "silk-cocoonbh-double-hybr", Name: "Cocoon", Marathi: "रेशीम कोष", MSAMBValue: "", CommodityOnlineID: "silk-cocoonbh-double-hybr"},
		},
	}
}
