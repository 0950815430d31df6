package cli

import (
	"bufio"
	"io"
	"strings"
)

type answer int

const (
	answerYes answer = iota
	answerNo
	answerInvalid
)

// readAnswer reads one line and classifies it. Case-insensitive; anything
// outside y/yes/n/no is invalid.
func readAnswer(r io.Reader) answer {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return answerYes
	case "n", "no":
		return answerNo
	default:
		return answerInvalid
	}
}
