// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package textio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestReadLine(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name: "Empty",
		},
		{
			name:   "SingleNoTerminator",
			source: "foo",
			want:   []string{"foo"},
		},
		{
			name:   "SingleLF",
			source: "foo\n",
			want:   []string{"foo"},
		},
		{
			name:   "TwoLines",
			source: "foo\nbar\n",
			want:   []string{"foo", "bar"},
		},
		{
			name:   "TrailingPartial",
			source: "foo\nbar",
			want:   []string{"foo", "bar"},
		},
		{
			name:   "CRLF",
			source: "foo\r\nbar\r\n",
			want:   []string{"foo", "bar"},
		},
		{
			name:   "BareCR",
			source: "foo\rbar\r",
			want:   []string{"foo", "bar"},
		},
		{
			name:   "MixedTerminators",
			source: "a\nb\r\nc\rd",
			want:   []string{"a", "b", "c", "d"},
		},
		{
			name:   "EmptyLines",
			source: "\n\nfoo\n\n",
			want:   []string{"", "", "foo", ""},
		},
		{
			name:   "LoneLF",
			source: "\n",
			want:   []string{""},
		},
		{
			name:   "CRLFSplitAcrossLines",
			source: "foo\r\n\r\nbar",
			want:   []string{"foo", "", "bar"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lr := NewLineReader(strings.NewReader(test.source), nil)
			var got []string
			for {
				line, err := lr.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatal("ReadLine:", err)
				}
				got = append(got, line)
			}
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("lines (-want +got):\n%s", diff)
			}
		})
	}
}

type closeRecorder struct {
	io.Reader
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestLineReaderClose(t *testing.T) {
	t.Run("ClosesUnderlying", func(t *testing.T) {
		rec := &closeRecorder{Reader: strings.NewReader("foo\n")}
		lr := NewLineReader(rec, nil)
		if err := lr.Close(); err != nil {
			t.Error("Close:", err)
		}
		if rec.closed != 1 {
			t.Errorf("underlying closed %d times; want 1", rec.closed)
		}
	})
	t.Run("Idempotent", func(t *testing.T) {
		rec := &closeRecorder{Reader: strings.NewReader("foo\n")}
		lr := NewLineReader(rec, nil)
		lr.Close()
		if err := lr.Close(); err != nil {
			t.Error("second Close:", err)
		}
		if rec.closed != 1 {
			t.Errorf("underlying closed %d times; want 1", rec.closed)
		}
	})
	t.Run("KeepOpen", func(t *testing.T) {
		rec := &closeRecorder{Reader: strings.NewReader("foo\n")}
		lr := NewLineReader(rec, &Options{KeepOpen: true})
		if err := lr.Close(); err != nil {
			t.Error("Close:", err)
		}
		if rec.closed != 0 {
			t.Errorf("underlying closed %d times; want 0", rec.closed)
		}
	})
	t.Run("ReadAfterClose", func(t *testing.T) {
		lr := NewLineReader(strings.NewReader("foo\n"), nil)
		lr.Close()
		if _, err := lr.ReadLine(); !errors.Is(err, ErrClosed) {
			t.Errorf("ReadLine after Close = %v; want ErrClosed", err)
		}
	})
}

func TestLineWriter(t *testing.T) {
	t.Run("WriteString", func(t *testing.T) {
		buf := new(bytes.Buffer)
		lw := NewLineWriter(buf, nil)
		if err := lw.WriteString("foo"); err != nil {
			t.Fatal("WriteString:", err)
		}
		if err := lw.Flush(); err != nil {
			t.Fatal("Flush:", err)
		}
		if got := buf.String(); got != "foo" {
			t.Errorf("output = %q; want %q", got, "foo")
		}
	})
	t.Run("WriteLine", func(t *testing.T) {
		buf := new(bytes.Buffer)
		lw := NewLineWriter(buf, nil)
		lw.WriteLine("foo")
		lw.WriteLine("bar")
		if err := lw.Flush(); err != nil {
			t.Fatal("Flush:", err)
		}
		if got, want := buf.String(), "foo\nbar\n"; got != want {
			t.Errorf("output = %q; want %q", got, want)
		}
	})
	t.Run("CloseFlushes", func(t *testing.T) {
		buf := new(bytes.Buffer)
		lw := NewLineWriter(buf, nil)
		lw.WriteString("foo")
		if err := lw.Close(); err != nil {
			t.Fatal("Close:", err)
		}
		if got := buf.String(); got != "foo" {
			t.Errorf("output = %q; want %q", got, "foo")
		}
	})
	t.Run("WriteAfterClose", func(t *testing.T) {
		lw := NewLineWriter(new(bytes.Buffer), nil)
		lw.Close()
		if err := lw.WriteString("foo"); !errors.Is(err, ErrClosed) {
			t.Errorf("WriteString after Close = %v; want ErrClosed", err)
		}
		if err := lw.Flush(); !errors.Is(err, ErrClosed) {
			t.Errorf("Flush after Close = %v; want ErrClosed", err)
		}
	})
}

type closeWriter struct {
	bytes.Buffer
	closed int
}

func (c *closeWriter) Close() error {
	c.closed++
	return nil
}

func TestLineWriterClose(t *testing.T) {
	t.Run("ClosesUnderlying", func(t *testing.T) {
		rec := new(closeWriter)
		lw := NewLineWriter(rec, nil)
		lw.Close()
		lw.Close()
		if rec.closed != 1 {
			t.Errorf("underlying closed %d times; want 1", rec.closed)
		}
	})
	t.Run("KeepOpen", func(t *testing.T) {
		rec := new(closeWriter)
		lw := NewLineWriter(rec, &Options{KeepOpen: true})
		lw.WriteString("foo")
		if err := lw.Close(); err != nil {
			t.Error("Close:", err)
		}
		if rec.closed != 0 {
			t.Errorf("underlying closed %d times; want 0", rec.closed)
		}
		if got := rec.String(); got != "foo" {
			t.Errorf("output = %q; want %q", got, "foo")
		}
	})
}
