package sxmlc

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOptions(t *testing.T) {
	tt := []struct {
		name            string
		options         []Option
		expectedOptions options
	}{
		{
			name:            "defaultOptions",
			expectedOptions: defaultOptions(),
		},
		{
			name: "less than 0",
			options: []Option{
				WithReadBufferSize(-1),
				WithAttrsBufferSize(-1),
				WithAutoGrowBufferMaxLimitSize(-1),
			},
			expectedOptions: options{
				readBufferSize:             defaultReadBufferSize,
				autoGrowBufferMaxLimitSize: autoGrowBufferMaxLimitSize,
				attrsBufferSize:            defaultAttrsBufferSize,
			},
		},
		{
			name: "readBufferSize > maxLimitGrowBufferSize",
			options: []Option{
				WithReadBufferSize(4 << 10),
				WithAutoGrowBufferMaxLimitSize(1 << 10),
			},
			expectedOptions: options{
				readBufferSize:             4 << 10,
				autoGrowBufferMaxLimitSize: 4 << 10,
				attrsBufferSize:            defaultAttrsBufferSize,
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			p := New(nil, tc.options...)
			if diff := cmp.Diff(p.options, tc.expectedOptions,
				cmp.AllowUnexported(options{}),
			); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestReadSegment(t *testing.T) {
	const doc = "<a>\ntext\n<!-- b > c -->\n</a>"
	expecteds := []struct {
		seg  string
		line int
	}{
		{seg: "<a>", line: 1},
		{seg: "\ntext\n<!-- b >", line: 3},
		{seg: " c -->", line: 3},
		{seg: "\n</a>", line: 4},
	}

	// A 1-byte read buffer forces every grow path.
	p := New(strings.NewReader(doc), WithReadBufferSize(1))
	for i := 0; ; i++ {
		seg, err := p.readSegment()
		if errors.Is(err, io.EOF) {
			if i != len(expecteds) {
				t.Fatalf("expected %d segments, got: %d", len(expecteds), i)
			}
			if len(seg) != 0 {
				t.Fatalf("expected no trailing bytes, got: %q", seg)
			}
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if string(seg) != expecteds[i].seg {
			t.Fatalf("segment %d: expected %q, got: %q", i, expecteds[i].seg, seg)
		}
		if p.line != expecteds[i].line {
			t.Fatalf("segment %d: expected line %d, got: %d", i, expecteds[i].line, p.line)
		}
	}
}

func TestAutoGrowBuffer(t *testing.T) {
	longTag := "<!--" + strings.Repeat("a", 8<<10) + "-->"

	tt := []struct {
		name string
		opts []Option
		err  error
	}{
		{
			name: "grow buffer with alloc",
			opts: []Option{WithReadBufferSize(1024)},
			err:  nil,
		},
		{
			name: "grow buffer exceed max limit",
			opts: []Option{
				WithReadBufferSize(1024),
				WithAutoGrowBufferMaxLimitSize(2048),
			},
			err: errBufferLimit,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			p := New(strings.NewReader(longTag), tc.opts...)
			var err error
			for {
				_, err = p.readSegment()
				if errors.Is(err, io.EOF) {
					err = nil
					break
				}
				if err != nil {
					break
				}
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error: %v, got: %v", tc.err, err)
			}
		})
	}
}

func TestReset(t *testing.T) {
	p := New(strings.NewReader("<a>rest"))
	if _, err := p.readSegment(); err != nil {
		t.Fatal(err)
	}
	if p.cur == 0 || p.line != 1 {
		t.Fatalf("expected advanced cursor on line 1, got: cur %d line %d", p.cur, p.line)
	}

	p.Reset(strings.NewReader("<b>"))
	if p.cur != 0 || p.line != 1 || p.err != nil {
		t.Fatalf("expected clean state after Reset, got: cur %d line %d err %v", p.cur, p.line, p.err)
	}
	seg, err := p.readSegment()
	if err != nil {
		t.Fatal(err)
	}
	if string(seg) != "<b>" {
		t.Fatalf("expected %q, got: %q", "<b>", seg)
	}
}
