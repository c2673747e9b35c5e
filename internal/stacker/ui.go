package stacker

// UI is the display collaborator for session text and overlays.
type UI interface {
	SetScoreText(score int)
	SetLevelText(level int)
	ShowInstructions(show bool)
	ShowResults(show bool)
	SetUsername(name string)
	PromptUsername() string
}
