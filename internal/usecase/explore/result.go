package explore

import (
	"fmt"

	"country-explorer/internal/domain/entity"
)

// StageName identifies a detail chain stage.
type StageName string

const (
	StageCountry StageName = "country"
	StageWeather StageName = "weather"
	StageNews    StageName = "news"
)

// StageStatus is how a stage finished.
type StageStatus string

const (
	StatusNotRun  StageStatus = "not_run"
	StatusOK      StageStatus = "ok"
	StatusSkipped StageStatus = "skipped" // valid absence, e.g. no capital
	StatusFailed  StageStatus = "failed"
)

// Stage is the outcome of one stage. Value is set only for StatusOK; Err
// only for StatusFailed.
type Stage[T any] struct {
	Status StageStatus
	Value  T
	Err    error
}

func okStage[T any](v T) Stage[T] {
	return Stage[T]{Status: StatusOK, Value: v}
}

func failedStage[T any](err error) Stage[T] {
	return Stage[T]{Status: StatusFailed, Err: err}
}

// Failed reports whether the stage failed.
func (s Stage[T]) Failed() bool {
	return s.Status == StatusFailed
}

// DetailResult holds every stage outcome of one detail chain, including data
// obtained before a later stage failed. Use Fold to get what may be shown.
type DetailResult struct {
	Code    string
	ChainID string

	Country Stage[*entity.Country]
	Weather Stage[*entity.WeatherSnapshot]
	News    Stage[[]entity.NewsArticle]
}

func newDetailResult(code, chainID string) DetailResult {
	return DetailResult{
		Code:    code,
		ChainID: chainID,
		Country: Stage[*entity.Country]{Status: StatusNotRun},
		Weather: Stage[*entity.WeatherSnapshot]{Status: StatusNotRun},
		News:    Stage[[]entity.NewsArticle]{Status: StatusNotRun},
	}
}

// FirstFailure returns the earliest failed stage in chain order.
func (r DetailResult) FirstFailure() (*StageError, bool) {
	switch {
	case r.Country.Failed():
		return &StageError{Stage: StageCountry, Err: r.Country.Err}, true
	case r.Weather.Failed():
		return &StageError{Stage: StageWeather, Err: r.Weather.Err}, true
	case r.News.Failed():
		return &StageError{Stage: StageNews, Err: r.News.Err}, true
	}
	return nil, false
}

// Fold applies the all-or-nothing policy: if any stage failed, the chain
// failed and none of its data is returned.
func (r DetailResult) Fold() (*Detail, error) {
	if stageErr, failed := r.FirstFailure(); failed {
		return nil, fmt.Errorf("%w: %w", ErrCountryFetchFailed, stageErr)
	}
	if r.Country.Status != StatusOK || r.Country.Value == nil {
		return nil, fmt.Errorf("%w: country stage %s", ErrCountryFetchFailed, r.Country.Status)
	}

	d := &Detail{Country: r.Country.Value}
	if r.Weather.Status == StatusOK {
		d.Weather = r.Weather.Value
	}
	if r.News.Status == StatusOK {
		d.News = r.News.Value
	}
	return d, nil
}

// NewsStatus distinguishes a detail with headlines from one without.
type NewsStatus int

const (
	NewsAvailable NewsStatus = iota
	// NewsEmpty means no headlines. It is not an error.
	NewsEmpty
)

// Detail is everything the detail view shows. Weather is nil when the
// country has no capital.
type Detail struct {
	Country *entity.Country
	Weather *entity.WeatherSnapshot
	News    []entity.NewsArticle
}

// NewsStatus reports whether any headlines are available.
func (d *Detail) NewsStatus() NewsStatus {
	if len(d.News) == 0 {
		return NewsEmpty
	}
	return NewsAvailable
}
