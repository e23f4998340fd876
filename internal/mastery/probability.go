package mastery

// Tally is the success and failure count of a fact over recent sessions
type Tally struct {
	Success int
	Fail    int
}

func (t Tally) Total() int {
	return t.Success + t.Fail
}

// PredictSuccess estimates the probability of a correct answer with add-one smoothing.
// The result is strictly between 0 and 1, and 0.5 for an unseen fact.
func PredictSuccess(t Tally) float64 {
	return float64(t.Success+1) / float64(t.Total()+2)
}
