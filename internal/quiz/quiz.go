// Package quiz turns a law into a multiple-choice question by prompting the
// model and extracting the question from its free-text reply.
package quiz

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OptionCount is the number of answer options every quiz carries.
const OptionCount = 4

// ErrNoQuiz means the model reply could not be turned into a quiz.
var ErrNoQuiz = errors.New("no quiz could be generated")

// RetryMessage is shown to users when a reply could not be turned into a quiz.
const RetryMessage = "No quiz could be generated. Please try again."

// Quiz is one generated question. Answer is the 1-based index of the
// correct option.
type Quiz struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Question string              `json:"question"`
	Options  [OptionCount]string `json:"options"`
	Answer   int                 `json:"answer"`
}

// CorrectOption returns the text of the correct option.
func (q Quiz) CorrectOption() string {
	if q.Answer < 1 || q.Answer > OptionCount {
		return ""
	}
	return q.Options[q.Answer-1]
}

var (
	questionLine = regexp.MustCompile(`(?i)question:(.*)$`)
	answerLine   = regexp.MustCompile(`(?i)correct answer:(.*)$`)
	optionLine   = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)
	firstDigit   = regexp.MustCompile(`\d`)
	emphasis     = strings.NewReplacer("**", "", "__", "")
)

// Parse extracts a quiz from a model reply. The first line carrying a
// "Question:" marker gives the question, "<n>. text" lines give the options
// by number, and the first digit on the "Correct Answer:" line gives the
// answer. Anything short of four non-empty options and an answer in range
// is ErrNoQuiz.
func Parse(title, text string) (Quiz, error) {
	var (
		question      string
		awaitQuestion bool
		options       []string
		extra         int
		answer        int
		answerSeen    bool
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(emphasis.Replace(raw))
		if line == "" {
			continue
		}

		if question == "" && !awaitQuestion {
			if m := questionLine.FindStringSubmatch(line); m != nil {
				question = cleanText(m[1])
				awaitQuestion = question == ""
				continue
			}
		}

		if m := answerLine.FindStringSubmatch(line); m != nil {
			if !answerSeen {
				answerSeen = true
				if d := firstDigit.FindString(m[1]); d != "" {
					answer, _ = strconv.Atoi(d)
				}
			}
			continue
		}

		if m := optionLine.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 {
				continue
			}
			if n > OptionCount {
				extra++
				continue
			}
			for len(options) < n {
				options = append(options, "")
			}
			if options[n-1] == "" {
				options[n-1] = cleanText(m[2])
			}
			continue
		}

		// Some models put the question on the line after a bare marker.
		if awaitQuestion {
			question = cleanText(line)
			awaitQuestion = false
		}
	}

	switch {
	case question == "":
		return Quiz{}, fmt.Errorf("%w: missing question", ErrNoQuiz)
	case !answerSeen:
		return Quiz{}, fmt.Errorf("%w: missing correct answer", ErrNoQuiz)
	case extra > 0 || len(options) != OptionCount:
		return Quiz{}, fmt.Errorf("%w: found %d options, want %d", ErrNoQuiz, len(options)+extra, OptionCount)
	case answer < 1 || answer > OptionCount:
		return Quiz{}, fmt.Errorf("%w: correct answer %d out of range", ErrNoQuiz, answer)
	}
	q := Quiz{Title: title, Question: question, Answer: answer}
	for i, opt := range options {
		if opt == "" {
			return Quiz{}, fmt.Errorf("%w: option %d missing", ErrNoQuiz, i+1)
		}
		q.Options[i] = opt
	}
	return q, nil
}

// Format renders q in the template Parse reads and the prompt asks for.
func Format(q Quiz) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Law Title:** %s\n", q.Title)
	fmt.Fprintf(&b, "**Question:** %s\n", q.Question)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	fmt.Fprintf(&b, "**Correct Answer:** %d\n", q.Answer)
	return b.String()
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_"))
}
