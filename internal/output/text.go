package output

// TextFormatter returns the reply unchanged.
type TextFormatter struct{}

func (TextFormatter) Format(raw string) (string, error) {
	return raw, nil
}
