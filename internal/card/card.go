// Package card builds the hiking safety card shown on the summit screen and
// exports it as markdown or PDF.
package card

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
	"github.com/jung-kurt/gofpdf"
)

// FileName is the name the card is saved under.
const FileName = "hiking-safety-card.pdf"

const (
	footer = "Looping Trails - The Game"
	lesson = "Remember: life is not a game. It does not have a loop, nor another chance. " +
		"Preparation is your only shield against the wild. " +
		"It is always better to hike with friends."
)

// Tip is one checklist line.
type Tip struct {
	Topic  string
	Advice string
}

// Checklist is printed on every card.
var Checklist = []Tip{
	{"Weather", "Check forecast before leaving."},
	{"Hydration", "Bring more water than needed."},
	{"Layering", "Temperature drops at altitude."},
	{"Navigation", "Always carry a physical map."},
	{"Communication", "Share plans with a friend."},
}

// Card is a summit souvenir for one run.
type Card struct {
	RunID        string
	Attempts     int
	Achievements []string
	Packed       []string
}

// New builds the card for a finished game.
func New(runID string, st models.GameState) Card {
	c := Card{RunID: runID, Attempts: st.LoopCount + 1}
	for _, a := range st.Achievements {
		if a.Unlocked {
			c.Achievements = append(c.Achievements, a.Name)
		}
	}
	for _, id := range st.Inventory {
		if it, ok := models.LookupItem(id); ok {
			c.Packed = append(c.Packed, it.Name)
		}
	}
	return c
}

// Markdown renders the card for the terminal.
func (c Card) Markdown() string {
	var b strings.Builder
	b.WriteString("# Safety Checklist\n\n")
	for _, t := range Checklist {
		fmt.Fprintf(&b, "- **%s:** %s\n", t.Topic, t.Advice)
	}
	if len(c.Achievements) > 0 {
		b.WriteString("\n## Achievements\n\n")
		for _, a := range c.Achievements {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}
	fmt.Fprintf(&b, "\n> %s\n>\n> *Ether*\n", lesson)
	return b.String()
}

// WritePDF writes the card as a single page PDF.
func (c Card) WritePDF(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Hiking Safety Checklist", false)
	pdf.SetAuthor("Looping Trails", false)
	pdf.AddPage()

	pdf.SetDrawColor(87, 83, 78)
	pdf.SetLineWidth(2)
	pdf.Rect(8, 8, 132, 194, "D")

	pdf.SetTextColor(6, 78, 59)
	pdf.SetFont("Courier", "B", 16)
	pdf.CellFormat(0, 12, "HIKING SAFETY CHECKLIST", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	for i, t := range Checklist {
		pdf.SetFont("Courier", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%d. %s", i+1, t.Topic), "", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 10)
		pdf.MultiCell(0, 5, "   "+t.Advice, "", "L", false)
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont("Courier", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Attempts: %d", c.Attempts), "", 1, "L", false, 0, "")
	if len(c.Packed) > 0 {
		pdf.MultiCell(0, 5, "Packed: "+strings.Join(c.Packed, ", "), "", "L", false)
	}
	for _, a := range c.Achievements {
		pdf.CellFormat(0, 6, "* "+a, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Courier", "I", 9)
	pdf.MultiCell(0, 5, lesson+" - Ether", "", "L", false)

	pdf.SetY(-22)
	pdf.SetTextColor(120, 113, 108)
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(0, 5, footer, "", 1, "L", false, 0, "")
	if c.RunID != "" {
		pdf.CellFormat(0, 5, "Run "+c.RunID, "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write safety card: %w", err)
	}
	return nil
}

// Save writes the card into dir and returns the file path.
func (c Card) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create card directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := c.WritePDF(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}
