package domain

import "fmt"

// Likelihood is the ordinal scale the safety classifier reports on.
type Likelihood int

const (
	LikelihoodUnknown Likelihood = iota
	LikelihoodVeryUnlikely
	LikelihoodUnlikely
	LikelihoodPossible
	LikelihoodLikely
	LikelihoodVeryLikely
)

var likelihoodNames = [...]string{
	LikelihoodUnknown:      "UNKNOWN",
	LikelihoodVeryUnlikely: "VERY_UNLIKELY",
	LikelihoodUnlikely:     "UNLIKELY",
	LikelihoodPossible:     "POSSIBLE",
	LikelihoodLikely:       "LIKELY",
	LikelihoodVeryLikely:   "VERY_LIKELY",
}

// String returns the symbolic name, e.g. "VERY_UNLIKELY".
func (l Likelihood) String() string {
	if l < 0 || int(l) >= len(likelihoodNames) {
		return likelihoodNames[LikelihoodUnknown]
	}
	return likelihoodNames[l]
}

// ParseLikelihood maps a symbolic name to a Likelihood.
// Unrecognised or empty names map to LikelihoodUnknown.
func ParseLikelihood(name string) Likelihood {
	for i, n := range likelihoodNames {
		if n == name {
			return Likelihood(i)
		}
	}
	return LikelihoodUnknown
}

// SafetyVerdict is the per-category result of classifying one thumbnail.
type SafetyVerdict struct {
	Adult    Likelihood
	Spoof    Likelihood
	Medical  Likelihood
	Violence Likelihood
	Racy     Likelihood
}

// ClassificationError is returned when the classifier reports an error for an image.
type ClassificationError struct {
	ImageURL string
	Message  string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("error processing image %s: %s", e.ImageURL, e.Message)
}
