package roster

import (
	"bytes"
	"encoding/csv"
	"io"
	"iter"
	"net/http"
	"strconv"

	"github.com/mcoot/badancup/internal/model"
)

// Columns is the fixed column order of the export
var Columns = []string{"id", "name", "phone", "village", "team", "created_at"}

// Record returns the export fields of p in Columns order.
// Absent optional fields are empty strings.
func Record(p *model.Player) []string {
	created := ""
	if !p.CreatedAt.IsZero() {
		created = p.CreatedAt.UTC().Format(model.TimestampLayout)
	}
	return []string{
		strconv.FormatInt(int64(p.ID), 10),
		p.Name,
		model.StringValue(p.Phone),
		p.Village,
		model.StringValue(p.Team),
		created,
	}
}

// Lines turns a player sequence into CSV text chunks: the header first, then
// one chunk per player in input order. The first player is read before the
// header is produced, so a source that fails straight away yields only the
// error. Later errors are passed through and end the sequence.
func Lines(players iter.Seq2[*model.Player, error]) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		encode := func(record []string) ([]byte, error) {
			buf.Reset()
			if err := w.Write(record); err != nil {
				return nil, err
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return nil, err
			}
			return bytes.Clone(buf.Bytes()), nil
		}

		next, stop := iter.Pull2(players)
		defer stop()

		p, err, ok := next()
		if ok && err != nil {
			yield(nil, err)
			return
		}

		header, err := encode(Columns)
		if !yield(header, err) || err != nil {
			return
		}

		for ok {
			line, err := encode(Record(p))
			if !yield(line, err) || err != nil {
				return
			}
			p, err, ok = next()
			if ok && err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// WriteCSV writes the export of players to w chunk by chunk, flushing after
// each chunk when w supports it. It returns the number of bytes written,
// which is zero when the source failed before the header.
func WriteCSV(w io.Writer, players iter.Seq2[*model.Player, error]) (int64, error) {
	flusher, _ := w.(http.Flusher)
	var written int64
	for chunk, err := range Lines(players) {
		if err != nil {
			return written, err
		}
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	return written, nil
}
