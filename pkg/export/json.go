package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/agentstation/utc"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
)

// jsonDocument is the JSON export envelope.
type jsonDocument struct {
	GeneratedAt string           `json:"generatedAt"`
	Count       int              `json:"count"`
	Entries     []*catalog.Entry `json:"entries"`
}

// WriteJSON writes entries as an indented JSON document.
func WriteJSON(w io.Writer, entries []*catalog.Entry) error {
	doc := jsonDocument{
		GeneratedAt: utc.Now().Format(time.RFC3339),
		Count:       len(entries),
		Entries:     entries,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WrapIO("write", "json", enc.Encode(doc))
}
