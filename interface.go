package csfix

// FixText runs the full pass pipeline with the built-in rule table over one
// document and returns the transformed text. It is the entry point for
// embedding the rewriter in other tools.
func FixText(text string) (string, error) {
	rules, err := DefaultRules().Compile()
	if err != nil {
		return "", err
	}

	pipeline, err := NewPipeline(rules, nil)
	if err != nil {
		return "", err
	}
	return pipeline.Transform(text), nil
}
