package ocr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/screen-text-mcp/internal/preprocess"
)

// ErrUnavailable is returned when the binary was built without the native
// Tesseract bindings.
var ErrUnavailable = errors.New("tesseract engine unavailable: built without cgo")

// Level selects how finely recognized text is split into blocks.
type Level int

const (
	// LevelBlock groups text into paragraph-like blocks. It is the default.
	LevelBlock Level = iota
	// LevelParagraph splits blocks into paragraphs.
	LevelParagraph
	// LevelLine reports one block per text line.
	LevelLine
	// LevelWord reports one block per word.
	LevelWord
)

var levelNames = map[Level]string{
	LevelBlock:     "block",
	LevelParagraph: "paragraph",
	LevelLine:      "line",
	LevelWord:      "word",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a level name ("block", "paragraph", "line", "word")
// into a Level. Matching ignores case; the empty string means LevelBlock.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelBlock, nil
	}
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	return LevelBlock, fmt.Errorf("unknown recognition level %q", s)
}

// DefaultLanguage is the Tesseract language used when Config.Language is empty.
const DefaultLanguage = "eng"

// Config configures a TesseractEngine.
type Config struct {
	// Language is a Tesseract language code such as "eng" or "eng+deu".
	Language string

	// TessdataPrefix is the directory holding *.traineddata files. Empty uses
	// Tesseract's built-in search path and TESSDATA_PREFIX.
	TessdataPrefix string

	// Level is the granularity of reported blocks.
	Level Level

	// Preprocess is applied to every upright frame before recognition.
	Preprocess preprocess.Options
}

func (c Config) languages() []string {
	lang := c.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	return strings.Split(lang, "+")
}

// Info describes the OCR subsystem for diagnostics.
type Info struct {
	Available    bool   `json:"available"`
	Version      string `json:"version,omitempty"`
	Error        string `json:"error,omitempty"`
	Backend      string `json:"backend"`
	Language     string `json:"language"`
	Level        string `json:"level"`
	TessdataPath string `json:"tessdata_path,omitempty"`
}
