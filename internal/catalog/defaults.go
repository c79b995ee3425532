package catalog

// DefaultCategories is the built-in output-format taxonomy.
var DefaultCategories = []Category{
	{
		ID:             "structure",
		Label:          "Štruktúra a Základný Formát",
		CompatibleWith: []string{"marketing_comm", "technical_data", "creative_ideation"},
		Options: []string{
			"Stručné zhrnutie (do 100 slov)",
			"Detailný text v odsekoch (Esej)",
			"Zoznam bodov (Bullet Points)",
			"Prehľad / Executive Summary (Odseky + Body)",
			"FAQ sekcia (Otázka/Odpoveď)",
			"Postup krok za krokom (How-to)",
		},
	},
	{
		ID:             "marketing_comm",
		Label:          "Marketing & Komunikácia",
		CompatibleWith: []string{"structure", "creative_ideation"},
		Options: []string{
			"Emailová štruktúra a obsah",
			"Šablóna odpovede pre klienta",
			"Social media príspevok (Post)",
			"Headline + Subheadline",
			"Produktový popis (UX Copy)",
			"CTA blok (Call-to-Action)",
			"Value Proposition",
		},
	},
	{
		ID:             "technical_data",
		Label:          "Dáta a Technické výstupy",
		CompatibleWith: []string{"structure"},
		Options: []string{
			"Výstup v JSON",
			"Porovnávacia tabuľka (Markdown)",
			"KPI report",
			"YAML alebo XML",
			"CSV export",
		},
	},
	{
		ID:             "creative_ideation",
		Label:          "Kreatívne",
		CompatibleWith: []string{"structure", "marketing_comm"},
		Options: []string{
			"3 kreatívne varianty (A/B/C)",
			"Storytelling",
			"Krátky scenár / dialóg",
		},
	},
	{
		ID:             "advanced",
		Label:          "Pokročilé",
		CompatibleWith: []string{"structure"},
		Options: []string{
			"Kódový snippet",
			"Grafický popis (napr. UML)",
			"Timeline",
			"SWOT analýza",
		},
	},
}

// PersonaSuggestions are offered by the persona field.
var PersonaSuggestions = []string{
	"Senior copywriter",
	"Právnik špecializovaný na obchodné zmluvy",
	"Dátový analytik",
	"Senior Python vývojár",
	"HR špecialista",
}

// ToneSuggestions are offered by the tone field.
var ToneSuggestions = []string{
	"Formálny",
	"Neformálny",
	"Priateľský",
	"Technický",
	"Kreatívny",
	"Sebavedomý",
	"Uvoľnený",
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return MustNew(DefaultCategories)
}
