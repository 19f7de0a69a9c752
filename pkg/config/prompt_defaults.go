package config

// Section keys double as the keys of the "analises" response object.
const (
	SectionNumerology         = "numerologia"
	SectionBirthChart         = "mapaAstral"
	SectionSpiritualCleansing = "limpezaEspiritual"
)

// DefaultPromptConfig is the prompt directive set shipped with the service.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		OpeningPhrase: "Querida alma, as cartas e os números revelam",
		Tone: []string{
			"escreva em português do Brasil, sempre na segunda pessoa (você)",
			"tom acolhedor, místico e esperançoso, sem linguagem técnica",
			"parágrafos curtos, sem listas numeradas",
		},
		DisallowedClaims: []string{
			"não prometa cura de doenças nem substitua acompanhamento médico ou psicológico",
			"não garanta riqueza, ganhos financeiros ou resultados certos",
			"não afirme certezas sobre o futuro; fale de tendências e possibilidades",
		},
		Sections: []PromptSection{
			{
				Key:         SectionNumerology,
				Title:       "Numerologia Cabalística",
				Instruction: "Interprete os números pessoais informados: propósito de vida, talentos e desafios.",
			},
			{
				Key:         SectionBirthChart,
				Title:       "Mapa Astral",
				Instruction: "Descreva a personalidade pelo signo solar, relacionamentos, carreira e o momento atual.",
			},
			{
				Key:         SectionSpiritualCleansing,
				Title:       "Limpeza Espiritual",
				Instruction: "Sugira um ritual simples de limpeza energética com ervas, banho e uma oração curta.",
			},
		},
	}
}
