// Package search drives the paginated retrieval of course search results.
package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"

	"smm-course-search/internal/components/assert"
	"smm-course-search/internal/components/telemetry"
	"smm-course-search/internal/courses"
	"smm-course-search/internal/markup"
	"smm-course-search/internal/query"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

const (
	report_search_page       = "search.page"
	report_search_page_count = "search.page-count"
	report_search_fetch_page = "search.fetch-page"
)

var tracer = otel.Tracer("smm-course-search/search")

var (
	ErrTransport    = errors.New("transport failure")
	ErrInvalidRange = errors.New("invalid page range")
)

// TransportError is returned when a result page could not be retrieved, either
// because no response arrived (Err is set) or because the status was not 200.
type TransportError struct {
	Page   int
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("fetch page %d: unexpected status %d", e.Page, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// PageResult is the outcome of one page of a search.
type PageResult struct {
	Page int
	// Count is the number of courses found in the last results container of the page.
	Count int
	// Courses holds every course found so far, across all pages.
	Courses []courses.Course
}

var resultsContainerRegex = regexp.MustCompile(`\s*search-results\s*$`)

func isResultsContainer(sel *goquery.Selection) bool {
	return markup.Is(sel, "div", resultsContainerRegex)
}

type Searcher struct {
	fetcher    Fetcher
	translator query.Translator
	decoder    courses.Decoder
	tel        telemetry.API
}

func NewSearcher(fetcher Fetcher, translator query.Translator, decoder courses.Decoder, tel telemetry.API) Searcher {
	assert.NotNil(fetcher)
	assert.NotNil(tel)
	return Searcher{
		fetcher:    fetcher,
		translator: translator,
		decoder:    decoder,
		tel:        telemetry.NewScopedAPI("search", tel),
	}
}

// GetCourses returns the courses of the first result page.
func (s Searcher) GetCourses(ctx context.Context, spec query.Spec) ([]courses.Course, error) {
	return s.Pages(ctx, spec, 1, 1, nil)
}

// GetCoursesPages returns the courses of the pages from first to last, it stops
// early at the first page without courses.
func (s Searcher) GetCoursesPages(ctx context.Context, spec query.Spec, first, last int) ([]courses.Course, error) {
	if last < first {
		return nil, ErrInvalidRange
	}
	return s.Pages(ctx, spec, first, last, nil)
}

// GetInfinity returns the courses of every page until a page without courses.
func (s Searcher) GetInfinity(ctx context.Context, spec query.Spec) ([]courses.Course, error) {
	return s.Pages(ctx, spec, 1, 0, nil)
}

type state int

const (
	stateFetching state = iota
	stateParsing
	stateDeciding
	stateDone
	stateFailed
)

// Pages requests result pages one after the other starting from `first`. A `last`
// of zero or less means there is no upper bound. The next page is only requested
// when the current one had courses and is still within range. onPage, when not
// nil, is called after every page.
//
// If any page fails to be retrieved, the courses gathered so far are discarded.
func (s Searcher) Pages(ctx context.Context, spec query.Spec, first, last int, onPage func(PageResult)) ([]courses.Course, error) {
	if first < 1 || (last > 0 && last < first) {
		return nil, ErrInvalidRange
	}

	runId := uuid.NewString()
	ctx, runSpan := tracer.Start(ctx, "search")
	defer runSpan.End()
	runSpan.SetAttributes(
		attribute.String("run.id", runId),
		attribute.Int("first", first),
		attribute.Int("last", last),
	)

	var (
		accumulated []courses.Course
		body        []byte
		count       int
		failure     error
		span        trace.Span
		pageCtx     context.Context
	)

	page := first
	current := stateFetching
	for {
		switch current {
		case stateFetching:
			pageCtx, span = tracer.Start(ctx, "search.page")
			span.SetAttributes(attribute.Int("page", page))

			body, failure = s.fetch(pageCtx, spec, page)
			if failure != nil {
				s.tel.ReportBroken(report_search_fetch_page, failure, runId)
				current = stateFailed
				continue
			}
			current = stateParsing

		case stateParsing:
			var found []courses.Course
			found, count, failure = ExtractPage(s.decoder, body)
			if failure != nil {
				failure = fmt.Errorf("parse page %d: %w", page, failure)
				s.tel.ReportBroken(report_search_page, failure, runId)
				current = stateFailed
				continue
			}
			accumulated = append(accumulated, found...)
			current = stateDeciding

		case stateDeciding:
			span.SetAttributes(attribute.Int("count", count))
			span.End()

			s.tel.ReportDebug(report_search_page, runId, page, count)
			s.tel.ReportCount(report_search_page_count, int64(count))
			if onPage != nil {
				onPage(PageResult{Page: page, Count: count, Courses: accumulated})
			}

			if count > 0 && (last <= 0 || page+1 <= last) {
				page++
				current = stateFetching
				continue
			}
			current = stateDone

		case stateDone:
			runSpan.SetAttributes(attribute.Int("courses", len(accumulated)))
			return accumulated, nil

		case stateFailed:
			span.RecordError(failure)
			span.SetStatus(codes.Error, failure.Error())
			span.End()
			runSpan.SetStatus(codes.Error, failure.Error())
			return nil, failure
		}
	}
}

func (s Searcher) fetch(ctx context.Context, spec query.Spec, page int) ([]byte, error) {
	link := s.translator.Url(spec, page)
	status, body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, &TransportError{Page: page, Err: err}
	}
	if status != 200 {
		return nil, &TransportError{Page: page, Status: status}
	}
	return body, nil
}

// eachResultsContainer calls visit with every results container of a result page,
// in the order the containers close.
func eachResultsContainer(body []byte, visit func(container *goquery.Selection)) error {
	builder := markup.NewBuilder()
	builder.OnClose = func(n *html.Node) {
		container := markup.Select(n)
		if isResultsContainer(container) {
			visit(container)
		}
	}
	return markup.Tokenize(bytes.NewReader(body), builder)
}

// ExtractPage extracts the courses of every results container of a result page
// in the order the containers close, the count is that of the last container.
func ExtractPage(decoder courses.Decoder, body []byte) ([]courses.Course, int, error) {
	var found []courses.Course
	count := 0

	err := eachResultsContainer(body, func(container *goquery.Selection) {
		extracted := decoder.Extract(container)
		count = len(extracted)
		found = append(found, extracted...)
	})
	if err != nil {
		return nil, 0, err
	}
	return found, count, nil
}

// ExtractPageIds is ExtractPage for course ids only, the rest of each card is not decoded.
func ExtractPageIds(decoder courses.Decoder, body []byte) ([]string, error) {
	var ids []string
	err := eachResultsContainer(body, func(container *goquery.Selection) {
		ids = append(ids, decoder.Ids(container)...)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
