package quiz

// SeedQuestions is the bundled fallback set served when the datastore
// is unreachable or empty, keeping the simulator usable offline.
func SeedQuestions() []Question {
	return []Question{
		{
			ID:   "seed-1",
			Text: "Nos termos do Código de Processo Penal, o inquérito policial deverá terminar, estando o indiciado preso, no prazo de:",
			Options: []Option{
				{ID: "a", Label: "A", Text: "5 dias"},
				{ID: "b", Label: "B", Text: "10 dias"},
				{ID: "c", Label: "C", Text: "15 dias"},
				{ID: "d", Label: "D", Text: "30 dias"},
			},
			CorrectOptionID: "b",
			Comment:         "Art. 10 do CPP: 10 dias se o indiciado estiver preso, 30 dias se solto.",
			Discipline:      "Direito Processual Penal",
			Topic:           "Inquérito Policial",
			Difficulty:      DifficultyMedium,
			Institution:     "PC-BA",
			Position:        "Investigador",
			Board:           "FGV",
			Year:            "2022",
			ContestClass:    "Operacional",
			CreatedAt:       1,
		},
		{
			ID:   "seed-2",
			Text: "No pacote Microsoft Office, o atalho padrão para salvar um documento é:",
			Options: []Option{
				{ID: "a", Label: "A", Text: "Ctrl+A"},
				{ID: "b", Label: "B", Text: "Ctrl+B"},
				{ID: "c", Label: "C", Text: "Ctrl+S"},
				{ID: "d", Label: "D", Text: "Ctrl+P"},
			},
			CorrectOptionID: "b",
			Comment:         "Na versão em português, Ctrl+B executa o comando Salvar.",
			Discipline:      "Informática",
			Topic:           "Editores de Texto",
			Difficulty:      DifficultyEasy,
			Institution:     "PC-BA",
			Position:        "Investigador",
			Board:           "FGV",
			Year:            "2022",
			ContestClass:    "Operacional",
			CreatedAt:       2,
		},
		{
			ID:   "seed-3",
			Text: "Constitui crime contra a Administração Pública praticado por funcionário público:",
			Options: []Option{
				{ID: "a", Label: "A", Text: "Peculato"},
				{ID: "b", Label: "B", Text: "Roubo"},
				{ID: "c", Label: "C", Text: "Estelionato"},
				{ID: "d", Label: "D", Text: "Extorsão"},
			},
			CorrectOptionID: "a",
			Comment:         "Peculato (art. 312 do CP) é crime funcional próprio.",
			Discipline:      "Direito Penal",
			Topic:           "Crimes contra a Administração Pública",
			Difficulty:      DifficultyMedium,
			Institution:     "PC-BA",
			Position:        "Investigador",
			Board:           "FGV",
			Year:            "2018",
			ContestClass:    "Operacional",
			CreatedAt:       3,
		},
	}
}
