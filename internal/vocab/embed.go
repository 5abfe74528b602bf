package vocab

import (
	"embed"
	"fmt"
)

//go:embed data/*.json
var dataFS embed.FS

func embedded(ds Dataset) ([]byte, error) {
	data, err := dataFS.ReadFile(fmt.Sprintf("data/%s.json", ds))
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return data, nil
}
