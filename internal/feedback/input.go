package feedback

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Input is one snippet and the raw comments left on it.
type Input struct {
	Code     string   `yaml:"code"`
	Comments []string `yaml:"comments"`
}

// LoadInput reads an Input from a YAML file. A path of "-" reads stdin.
func LoadInput(path string) (Input, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Input{}, fmt.Errorf("reading input: %w", err)
	}
	return ParseInput(data)
}

// ParseInput decodes YAML into an Input. The code field is required.
func ParseInput(data []byte) (Input, error) {
	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("parsing input: %w", err)
	}
	if in.Code == "" {
		return Input{}, errors.New("input has no code")
	}
	return in, nil
}

// Example is the built-in review used when mentor runs without arguments.
func Example() Input {
	return Input{
		Code: `def get_active_users(users):
    results = []
    for u in users:
        if u.is_active == True and u.profile_complete == True:
            results.append(u)
    return results`,
		Comments: []string{
			"This is inefficient. Don't loop twice conceptually.",
			"Variable 'u' is a bad name.",
			"Boolean comparison '== True' is redundant.",
		},
	}
}
