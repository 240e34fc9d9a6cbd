package cli

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/joho/godotenv"
)

type templateContext struct {
	ENV map[string]string
}

var missingKeyRegex = regexp.MustCompile(`map has no entry for key "(.*?)"`)

// Preprocess replaces {{ .ENV.VAR }} placeholders with values from the
// environment. A .env file in the working directory is loaded first; it
// never overrides variables that are already set.
func Preprocess(input []byte) ([]byte, error) {
	_ = godotenv.Load() // no error if .env doesn't exist

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	tmpl, err := template.New("input").Option("missingkey=error").Parse(string(input))
	if err != nil {
		return nil, ErrTemplate.Err(err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, templateContext{ENV: env}); err != nil {
		if m := missingKeyRegex.FindStringSubmatch(err.Error()); len(m) == 2 {
			return nil, ErrMissingEnv.At(m[1]).Msg("missing environment variable (set it in your shell or .env file)")
		}
		return nil, ErrTemplate.Err(err)
	}
	return out.Bytes(), nil
}
