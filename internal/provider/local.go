package provider

import (
	"context"

	"github.com/bassista/go_records/internal/record"
)

var localFixture = []record.Record{
	{
		OwnerID: 1,
		ID:      1,
		Title:   "sunt aut facere repellat provident occaecati excepturi optio reprehenderit",
		Body:    "quia et suscipit suscipit recusandae consequuntur expedita et cum reprehenderit molestiae ut ut quas totam nostrum rerum est autem sunt rem eveniet architecto",
	},
	{
		OwnerID: 1,
		ID:      2,
		Title:   "qui est esse",
		Body:    "est rerum tempore vitae sequi sint nihil reprehenderit dolor beatae ea dolores neque fugiat blanditiis voluptate porro vel nihil molestiae ut reiciendis qui aperiam non debitis possimus qui neque nisi nulla",
	},
}

// LocalFixtureProvider serves a fixed, hand-written set of records. It never fails.
type LocalFixtureProvider struct{}

func NewLocalFixtureProvider() *LocalFixtureProvider {
	return &LocalFixtureProvider{}
}

func (p *LocalFixtureProvider) Name() string { return "local" }

// FetchRecords returns a fresh copy of the fixture so callers cannot alter it.
func (p *LocalFixtureProvider) FetchRecords(_ context.Context) ([]record.Record, error) {
	return record.Clone(localFixture), nil
}
