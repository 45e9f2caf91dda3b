package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StaticProvider derives join links locally so booking never depends on an
// external service. Used when no provider is configured.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) CreateMeeting(
	_ context.Context,
	_ string,
	_ time.Time,
	_ int,
	_ []string,
) (*Meeting, error) {
	id := uuid.New().String()
	return &Meeting{
		ID:      id,
		JoinURL: "https://meet.coachwell.app/" + id,
	}, nil
}

func (p *StaticProvider) DeleteMeeting(_ context.Context, _ string) (bool, error) {
	// Nothing was allocated remotely.
	return true, nil
}
