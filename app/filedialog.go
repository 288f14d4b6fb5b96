package main

import (
	"bytes"
	"io"
	"os"

	"bares/app/lang"

	"gioui.org/x/explorer"
)

// FileResult holds the result of a file open operation.
type FileResult struct {
	Data []byte
	Path string
	Err  error
}

// SaveResult holds the result of a file save operation. Path is set when
// the destination is a known path.
type SaveResult struct {
	Path string
	Err  error
}

// OpenFileAsync triggers a file-open dialog in a goroutine.
// The result is sent on the returned channel.
func OpenFileAsync(expl *explorer.Explorer) <-chan FileResult {
	ch := make(chan FileResult, 1)
	go func() {
		file, err := expl.ChooseFile()
		if err != nil {
			ch <- FileResult{Err: err}
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		ch <- FileResult{Data: data, Err: err}
	}()
	return ch
}

// SaveFileAsync triggers a file-save dialog in a goroutine and writes content
// to the chosen file. The result is sent on the returned channel.
func SaveFileAsync(expl *explorer.Explorer, content []byte, defaultName string) <-chan SaveResult {
	ch := make(chan SaveResult, 1)
	go func() {
		w, err := expl.CreateFile(defaultName)
		if err != nil {
			ch <- SaveResult{Err: err}
			return
		}
		_, err = w.Write(content)
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
		ch <- SaveResult{Err: err}
	}()
	return ch
}

// SavePathAsync writes content to path in a goroutine.
func SavePathAsync(path string, content []byte) <-chan SaveResult {
	ch := make(chan SaveResult, 1)
	go func() {
		ch <- SaveResult{Path: path, Err: os.WriteFile(path, content, 0o644)}
	}()
	return ch
}

// ResultsText renders results one per line, the same layout the command
// line tool writes to its output file.
func ResultsText(results []lang.EvalResult) []byte {
	var b bytes.Buffer
	for _, r := range results {
		b.WriteString(r.Text)
		b.WriteByte('\n')
	}
	return b.Bytes()
}
