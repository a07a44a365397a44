package summarizer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ComputeStatistics derives word and character counts for an input/summary
// pair. The compression ratio is rounded to two decimals and is 0 when the
// summary has no words.
func ComputeStatistics(input, summary string) Statistics {
	inputWords := countWords(input)
	summaryWords := countWords(summary)

	var ratio float64
	if summaryWords > 0 {
		ratio = roundTo2(float64(inputWords) / float64(summaryWords))
	}

	return Statistics{
		InputWords:       inputWords,
		SummaryWords:     summaryWords,
		CompressionRatio: ratio,
		InputChars:       utf8.RuneCountInString(input),
		SummaryChars:     utf8.RuneCountInString(summary),
	}
}

// roundTo2 rounds the exact binary value of x half to even (5/8 -> 0.62).
func roundTo2(x float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return 0
	}
	return rounded
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
