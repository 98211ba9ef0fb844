package synthesis

import "strings"

// parseNumberedAnswers extracts answers formatted as "1. text" into a
// map keyed by the leading number. A line only counts when its leading
// digits are immediately followed by a period; anything else, including
// continuation lines, is ignored. Empty answers are dropped.
func parseNumberedAnswers(response string) map[int]string {
	answers := make(map[int]string)
	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}

		j := 0
		num := 0
		for j < len(line) && line[j] >= '0' && line[j] <= '9' {
			num = num*10 + int(line[j]-'0')
			j++
		}
		if j >= len(line) || line[j] != '.' {
			continue
		}

		if ans := strings.TrimSpace(line[j+1:]); ans != "" {
			answers[num] = ans
		}
	}
	return answers
}
