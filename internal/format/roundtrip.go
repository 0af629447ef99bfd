package format

import (
	"fmt"
	"slices"

	"tabtidy/internal/parser"
	"tabtidy/internal/source"
	"tabtidy/internal/table"
)

// CheckRoundTrip re-parses formatted output and verifies no cell text was
// lost or invented. Headers are excluded (casing is normalized on purpose)
// and continuation markers are excluded (splitting inserts them).
//
// Страховка от багов раскладки: форматирование меняет только пробелы.
func CheckRoundTrip(sf *source.File, formatted []byte) error {
	before := cellStream(parser.ParseFile(sf, parser.Options{}))

	fs := source.NewFileSet()
	reparsed := fs.Get(fs.AddVirtual(sf.Path, formatted))
	after := cellStream(parser.ParseFile(reparsed, parser.Options{}))

	if !slices.Equal(before, after) {
		return fmt.Errorf("format: %s: formatting would change file content", sf.Path)
	}
	return nil
}

// cellStream flattens every non-marker cell text of the file, in source
// order. Two files with equal streams carry the same content.
func cellStream(f *table.File) []string {
	var out []string
	collect := func(b *table.Block) {
		b.Walk(func(blk *table.Block) {
			for _, s := range blk.Statements() {
				for _, c := range s.Cells {
					if !c.IsMarker() {
						out = append(out, c.Text)
					}
				}
			}
		})
	}
	for i := range f.Sections {
		sec := &f.Sections[i]
		collect(&sec.Body)
		for j := range sec.Cases {
			out = append(out, sec.Cases[j].Name.Texts()...)
			collect(&sec.Cases[j].Body)
		}
	}
	return out
}
