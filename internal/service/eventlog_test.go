package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio_cms/internal/models"
)

func fixedZone(name string, offsetSec int) *time.Location {
	return time.FixedZone(name, offsetSec)
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

// normalizeToUTC

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(fixedZone("UTC+3", 3*3600), 2025, time.August, 1, 12, 34, 56),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC) // 12:34:56+03 == 09:34:56Z
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeToUTC(tc.in); !tc.want(got) {
				t.Fatalf("unexpected result %v", got)
			}
		})
	}
}

// normalizeAndValidateFilter

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	fromLocal := mustTimeIn(fixedZone("UTC+2", 2*3600), 2025, time.September, 10, 10, 0, 0)
	toUTC := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		in             LogFilter
		wantFrom       time.Time
		wantTo         time.Time
		wantType       string
		wantCollection string
		wantErr        error
	}{
		{
			name: "all zero/empty ok",
			in:   LogFilter{},
		},
		{
			name: "from after to -> error",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
				Type: "create",
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "normalize tz, type and collection",
			in: LogFilter{
				From:       fromLocal,
				To:         toUTC,
				Type:       " update ",
				Collection: " books ",
			},
			wantFrom:       time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC), // 10:00 +02 -> 08:00Z
			wantTo:         toUTC,
			wantType:       "UPDATE",
			wantCollection: "books",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := normalizeAndValidateFilter(tc.in)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v; got %v", tc.wantErr, err)
			}
			if !got.From.Equal(tc.wantFrom) {
				t.Fatalf("from: got %v; want %v", got.From, tc.wantFrom)
			}
			if !got.To.Equal(tc.wantTo) {
				t.Fatalf("to: got %v; want %v", got.To, tc.wantTo)
			}
			if got.Type != tc.wantType {
				t.Fatalf("type: got %q; want %q", got.Type, tc.wantType)
			}
			if got.Collection != tc.wantCollection {
				t.Fatalf("collection: got %q; want %q", got.Collection, tc.wantCollection)
			}
		})
	}
}

// EventLogService.List

func TestEventLogService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{
		events: []models.ContentEvent{
			{EventID: "1"},
		},
	}
	svc := NewEventLogService(frepo)

	fromLocal := mustTimeIn(fixedZone("UTC+5", 5*3600), 2025, time.October, 1, 10, 0, 0)
	toLocal := mustTimeIn(fixedZone("UTC-2", -2*3600), 2025, time.October, 1, 12, 30, 0)

	out, err := svc.List(context.Background(), LogFilter{
		From:       fromLocal,
		To:         toLocal,
		Type:       "  delete ",
		Collection: "tools",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "1" {
		t.Fatalf("unexpected events: %+v", out)
	}
	if frepo.calls != 1 {
		t.Fatalf("repo List should be called once, got %d", frepo.calls)
	}

	wantFrom := time.Date(2025, time.October, 1, 5, 0, 0, 0, time.UTC) // 10:00 +05 -> 05:00Z
	wantTo := time.Date(2025, time.October, 1, 14, 30, 0, 0, time.UTC) // 12:30 -02 -> 14:30Z

	if !frepo.gotFilter.From.Equal(wantFrom) {
		t.Fatalf("repo gotFrom=%v; want %v", frepo.gotFilter.From, wantFrom)
	}
	if !frepo.gotFilter.To.Equal(wantTo) {
		t.Fatalf("repo gotTo=%v; want %v", frepo.gotFilter.To, wantTo)
	}
	if frepo.gotFilter.Type != models.EventDelete || frepo.gotFilter.Collection != "tools" {
		t.Fatalf("repo got filter %+v", frepo.gotFilter)
	}
}

func TestEventLogService_List_ValidationError(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{}
	svc := NewEventLogService(frepo)

	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange; got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.calls)
	}
}

func TestEventLogService_List_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{err: errors.New("db down")}
	svc := NewEventLogService(frepo)

	_, err := svc.List(context.Background(), LogFilter{})
	if !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}

func TestActivityRecorder_SwallowsAppendErrors(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{appendErr: errors.New("locked")}
	r := activityRecorder{events: frepo}

	// Must not panic with a nil logger either.
	r.record(context.Background(), documentEvent(models.EventCreate, "skills", "id-1", time.Now()))

	ev := documentEvent(models.EventDelete, "books", "b1", time.Time{})
	if ev.Description != "books document deleted" || ev.DocumentID != "b1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}
