package mapper

// SamplePayload returns a representative VideoAsk payload used for dry runs
func SamplePayload() *Payload {
	return &Payload{
		EventType: "form_response",
		EventID:   "evt_sample",
		Contact: &Contact{
			ContactID:   "contact_sample",
			Name:        "Test User",
			Email:       "test@example.com",
			CreatedAt:   "2024-01-15T10:30:00Z",
			ProductName: "videoask",
			Location:    "Test City",
			Answers: []Answer{
				{
					AnswerID:      "ans_1",
					QuestionID:    "q_intro",
					Type:          "video",
					Transcription: "Hi, I am a test user and this is my introduction.",
					ShareURL:      "https://videoask.com/share/sample-intro",
				},
				{
					AnswerID:   "ans_2",
					QuestionID: "q_advice",
					Type:       "text",
					Text:       "Keep learning and stay curious.",
				},
			},
		},
		Form: &Form{
			FormID: "form_sample",
			Title:  "Alumni Stories",
			Questions: []Question{
				{QuestionID: "q_intro", Label: "Please introduce yourself"},
				{QuestionID: "q_advice", Title: "What advice would you share?"},
			},
		},
	}
}
