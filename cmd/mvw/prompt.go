package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mvw/internal/library"
	"mvw/internal/review"
)

// terminalPrompter collects the star rating and review text on stdin. An
// EOF (ctrl-d) at either prompt aborts the session cleanly.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalPrompter(in io.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *terminalPrompter) Star(defaultStar float64) (float64, error) {
	for {
		fmt.Fprintf(p.out, "Star rating 0-5, halves allowed [%.1f]> ", defaultStar)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return defaultStar, nil
		}
		star, err := strconv.ParseFloat(line, 64)
		if err != nil || library.ValidateStar(star) != nil {
			fmt.Fprintf(p.out, "Please enter a number between %.1f and %.1f\n", library.MinStar, library.MaxStar)
			continue
		}
		return star, nil
	}
}

func (p *terminalPrompter) Review(defaultReview string) (string, error) {
	if defaultReview != "" {
		fmt.Fprintf(p.out, "Current review: %s\n", defaultReview)
		fmt.Fprint(p.out, "Review (empty keeps current)> ")
	} else {
		fmt.Fprint(p.out, "Review> ")
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultReview, nil
	}
	return line, nil
}

func (p *terminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) == "" {
				return "", review.ErrAborted
			}
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
