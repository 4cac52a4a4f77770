package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchServiceRecordOrdersMostRecentFirst(t *testing.T) {
	svc := NewSearchService(&memorySessionRepo{}, testLogger())

	_, err := svc.Record(context.Background(), "golang")
	require.NoError(t, err)
	terms, err := svc.Record(context.Background(), "react")
	require.NoError(t, err)
	require.Equal(t, []string{"react", "golang"}, terms)
}

func TestSearchServiceRecordDeduplicates(t *testing.T) {
	svc := NewSearchService(&memorySessionRepo{}, testLogger())

	_, err := svc.Record(context.Background(), "golang")
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), "react")
	require.NoError(t, err)
	terms, err := svc.Record(context.Background(), "GoLang")
	require.NoError(t, err)
	require.Equal(t, []string{"GoLang", "react"}, terms)
}

func TestSearchServiceRecordCapsHistory(t *testing.T) {
	svc := NewSearchService(&memorySessionRepo{}, testLogger())

	for i := 0; i < 15; i++ {
		_, err := svc.Record(context.Background(), fmt.Sprintf("term-%d", i))
		require.NoError(t, err)
	}
	terms, err := svc.Recent(context.Background())
	require.NoError(t, err)
	require.Len(t, terms, maxRecentSearches)
	require.Equal(t, "term-14", terms[0])
}

func TestSearchServiceIgnoresBlankTerms(t *testing.T) {
	svc := NewSearchService(&memorySessionRepo{}, testLogger())

	_, err := svc.Record(context.Background(), "golang")
	require.NoError(t, err)
	terms, err := svc.Record(context.Background(), "   ")
	require.NoError(t, err)
	require.Equal(t, []string{"golang"}, terms)
}

func TestSearchServiceClear(t *testing.T) {
	sessions := &memorySessionRepo{searches: []string{"golang"}}
	svc := NewSearchService(sessions, testLogger())

	require.NoError(t, svc.Clear(context.Background()))
	terms, err := svc.Recent(context.Background())
	require.NoError(t, err)
	require.Empty(t, terms)
}
