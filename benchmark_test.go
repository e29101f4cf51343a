package sxmlc_test

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/phox/sxmlc"
)

func BenchmarkParse(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "feed.xml"))
	if err != nil {
		panic(err)
	}

	b.Run("stdlib.xml", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := tokenizeWithStdlibXML(bytes.NewReader(data)); err != nil {
				b.Skipf("could not parse: %v", err)
			}
		}
	})
	b.Run("sxmlc", func(b *testing.B) {
		p := sxmlc.New(nil)
		h := sxmlc.Handler{
			Every: func(sxmlc.EventKind, *sxmlc.Node, string) error { return nil },
		}
		for i := 0; i < b.N; i++ {
			p.Reset(bytes.NewReader(data))
			if err := p.Parse(h); err != nil {
				b.Skipf("could not parse: %v", err)
			}
		}
	})
}

func BenchmarkParseDocument(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "feed.xml"))
	if err != nil {
		panic(err)
	}

	b.Run("stdlib.xml", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var feed struct {
				Version string `xml:"version,attr"`
				Items   []struct {
					ID      string `xml:"id,attr"`
					Title   string `xml:"title"`
					Summary string `xml:"summary"`
				} `xml:"item"`
			}
			if err := xml.Unmarshal(data, &feed); err != nil {
				b.Skipf("could not unmarshal: %v", err)
			}
		}
	})
	b.Run("sxmlc", func(b *testing.B) {
		p := sxmlc.New(nil)
		for i := 0; i < b.N; i++ {
			p.Reset(bytes.NewReader(data))
			if _, err := p.ParseDocument(); err != nil {
				b.Skipf("could not parse: %v", err)
			}
		}
	})
}

func tokenizeWithStdlibXML(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		_ = token
	}
	return nil
}
