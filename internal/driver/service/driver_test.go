package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	"github.com/DeepthiAddanki/Fleetrace/internal/driver/model"
)

// fakeRepo mimics the store: one driver row plus the normalized
// location row per driver, updated with the same semantics as the SQL.
type fakeRepo struct {
	drivers   map[string]*model.Driver
	locations map[string]model.VehicleLocation
	vehicles  map[string]string
	fail      error
}

func newFakeRepo(ids ...string) *fakeRepo {
	r := &fakeRepo{
		drivers:   map[string]*model.Driver{},
		locations: map[string]model.VehicleLocation{},
		vehicles:  map[string]string{},
	}
	for _, id := range ids {
		r.drivers[id] = &model.Driver{ID: id}
	}
	return r
}

func (r *fakeRepo) get(id string) (*model.Driver, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	d, ok := r.drivers[id]
	if !ok {
		return nil, fmt.Errorf("%w: driver %s", apperr.ErrNotFound, id)
	}
	return d, nil
}

func (r *fakeRepo) EnterDashboard(ctx context.Context, id string) error {
	d, err := r.get(id)
	if err != nil {
		return err
	}
	d.IsOnline = true
	return nil
}

func (r *fakeRepo) Heartbeat(ctx context.Context, id string, at time.Time) error {
	d, err := r.get(id)
	if err != nil {
		return err
	}
	d.IsOnline = true
	d.LastSeen = &at
	return nil
}

func (r *fakeRepo) SetStatus(ctx context.Context, id string, online bool, at time.Time) error {
	d, err := r.get(id)
	if err != nil {
		return err
	}
	d.IsOnline = online
	if online {
		d.LastSeen = &at
	} else {
		d.LastSeen = nil
	}
	return nil
}

func (r *fakeRepo) SetOffline(ctx context.Context, id string) error {
	d, err := r.get(id)
	if err != nil {
		return err
	}
	d.IsOnline = false
	return nil
}

func (r *fakeRepo) ReportLocation(ctx context.Context, id string, lat, lng float64, at time.Time) error {
	d, err := r.get(id)
	if err != nil {
		return err
	}
	r.locations[id] = model.VehicleLocation{DriverID: id, Latitude: lat, Longitude: lng, UpdatedAt: at}
	d.LastLatitude = &lat
	d.LastLongitude = &lng
	d.LastLocationAt = &at
	return nil
}

func (r *fakeRepo) CompleteProfile(ctx context.Context, id string, p model.ProfileCompletion) error {
	d, err := r.get(id)
	if err != nil {
		return err
	}
	d.FirstName = &p.FirstName
	d.LastName = &p.LastName
	d.PhoneNumber = &p.PhoneNumber
	d.LicenseNumber = &p.LicenseNumber
	d.VehicleNumber = &p.VehicleNumber
	d.VehicleType = &p.VehicleType
	d.VehicleModel = &p.VehicleModel
	d.IsOnboarded = true
	return nil
}

func (r *fakeRepo) GetSummary(ctx context.Context, id string) (model.Summary, error) {
	d, err := r.get(id)
	if err != nil {
		return model.Summary{}, err
	}
	return model.Summary{
		Name:          "Driver " + id,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		PhoneNumber:   d.PhoneNumber,
		LicenseNumber: d.LicenseNumber,
		VehicleNumber: d.VehicleNumber,
		VehicleType:   d.VehicleType,
		VehicleModel:  d.VehicleModel,
	}, nil
}

func (r *fakeRepo) IsOnboarded(ctx context.Context, id string) (bool, error) {
	d, err := r.get(id)
	if err != nil {
		return false, err
	}
	return d.IsOnboarded, nil
}

func (r *fakeRepo) AddVehicle(ctx context.Context, id, driverID, vehicleNumber string) error {
	if r.fail != nil {
		return r.fail
	}
	r.vehicles[id] = vehicleNumber
	return nil
}

type recordedEvent struct {
	kind     string
	driverID string
	online   bool
	lat, lng float64
}

type fakeEvents struct {
	events []recordedEvent
	err    error
}

func (f *fakeEvents) PublishStatus(ctx context.Context, driverID string, online bool) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, recordedEvent{kind: "status", driverID: driverID, online: online})
	return nil
}

func (f *fakeEvents) PublishLocation(ctx context.Context, driverID string, lat, lng float64) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, recordedEvent{kind: "location", driverID: driverID, lat: lat, lng: lng})
	return nil
}

func newTestService(repo *fakeRepo, events EventPublisher) *DriverService {
	s := NewDriverService(repo, events)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return s
}

func TestHeartbeat_Idempotent(t *testing.T) {
	repo := newFakeRepo("d1")
	svc := newTestService(repo, nil)
	ctx := context.Background()

	var last time.Time
	for i := 0; i < 3; i++ {
		at, err := svc.Heartbeat(ctx, "d1")
		require.NoError(t, err)
		last = at
	}

	d := repo.drivers["d1"]
	assert.True(t, d.IsOnline)
	require.NotNil(t, d.LastSeen)
	assert.Equal(t, last, *d.LastSeen, "last_seen must equal the time of the last call")
}

func TestSetStatus_StampsAndClears(t *testing.T) {
	repo := newFakeRepo("d1")
	svc := newTestService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, "d1", true))
	d := repo.drivers["d1"]
	assert.True(t, d.IsOnline)
	assert.NotNil(t, d.LastSeen, "going online stamps last_seen")

	require.NoError(t, svc.SetStatus(ctx, "d1", false))
	assert.False(t, d.IsOnline)
	assert.Nil(t, d.LastSeen, "explicit offline clears last_seen")
}

func TestEnterDashboard_DoesNotStampLastSeen(t *testing.T) {
	repo := newFakeRepo("d1")
	svc := newTestService(repo, nil)

	_, err := svc.EnterDashboard(context.Background(), "d1")
	require.NoError(t, err)

	d := repo.drivers["d1"]
	assert.True(t, d.IsOnline)
	assert.Nil(t, d.LastSeen, "dashboard entry is not a liveness signal")
}

func TestReportLocation_BothViewsAgree(t *testing.T) {
	repo := newFakeRepo("d1")
	svc := newTestService(repo, nil)

	at, err := svc.ReportLocation(context.Background(), "d1", 1.0, 2.0)
	require.NoError(t, err)

	loc := repo.locations["d1"]
	assert.Equal(t, 1.0, loc.Latitude)
	assert.Equal(t, 2.0, loc.Longitude)
	assert.Equal(t, at, loc.UpdatedAt)

	d := repo.drivers["d1"]
	require.NotNil(t, d.LastLatitude)
	require.NotNil(t, d.LastLongitude)
	assert.Equal(t, loc.Latitude, *d.LastLatitude)
	assert.Equal(t, loc.Longitude, *d.LastLongitude)
	assert.Equal(t, loc.UpdatedAt, *d.LastLocationAt)
}

func TestReportLocation_ReplacesPriorReport(t *testing.T) {
	repo := newFakeRepo("d1")
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.ReportLocation(ctx, "d1", 1.0, 2.0)
	require.NoError(t, err)
	_, err = svc.ReportLocation(ctx, "d1", 3.0, 4.0)
	require.NoError(t, err)

	loc := repo.locations["d1"]
	assert.Equal(t, 3.0, loc.Latitude)
	assert.Equal(t, 4.0, loc.Longitude)
}

func TestLogout_SetsOffline(t *testing.T) {
	repo := newFakeRepo("d1")
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.Heartbeat(ctx, "d1")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, "d1"))

	assert.False(t, repo.drivers["d1"].IsOnline)
}

func TestCompleteProfile_Recompletion(t *testing.T) {
	repo := newFakeRepo("d1")
	svc := newTestService(repo, nil)
	ctx := context.Background()

	first := model.ProfileCompletion{
		FirstName: "A", LastName: "B", PhoneNumber: "123",
		LicenseNumber: "L1", VehicleNumber: "V1", VehicleType: "van", VehicleModel: "X",
	}
	require.NoError(t, svc.CompleteProfile(ctx, "d1", first))
	assert.True(t, repo.drivers["d1"].IsOnboarded)

	second := first
	second.PhoneNumber = "456"
	require.NoError(t, svc.CompleteProfile(ctx, "d1", second), "re-completion is an allowed update")
	assert.Equal(t, "456", *repo.drivers["d1"].PhoneNumber)
	assert.True(t, repo.drivers["d1"].IsOnboarded)
}

func TestPresenceEvents_Published(t *testing.T) {
	repo := newFakeRepo("d1")
	events := &fakeEvents{}
	svc := newTestService(repo, events)
	ctx := context.Background()

	_, err := svc.EnterDashboard(ctx, "d1")
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(ctx, "d1", false))
	_, err = svc.ReportLocation(ctx, "d1", 5.0, 6.0)
	require.NoError(t, err)

	require.Len(t, events.events, 3)
	assert.Equal(t, recordedEvent{kind: "status", driverID: "d1", online: true}, events.events[0])
	assert.Equal(t, recordedEvent{kind: "status", driverID: "d1", online: false}, events.events[1])
	assert.Equal(t, recordedEvent{kind: "location", driverID: "d1", lat: 5.0, lng: 6.0}, events.events[2])
}

func TestPresenceEvents_BrokerFailureDoesNotFailRequest(t *testing.T) {
	repo := newFakeRepo("d1")
	events := &fakeEvents{err: fmt.Errorf("broker down")}
	svc := newTestService(repo, events)

	require.NoError(t, svc.SetStatus(context.Background(), "d1", true))
	assert.True(t, repo.drivers["d1"].IsOnline)
}

func TestUnknownDriver_NotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.Heartbeat(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.GetSummary(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStoreFailure_SurfacesUnavailable(t *testing.T) {
	repo := newFakeRepo("d1")
	repo.fail = fmt.Errorf("%w: connection reset", apperr.ErrUnavailable)
	svc := newTestService(repo, nil)

	_, err := svc.ReportLocation(context.Background(), "d1", 1.0, 2.0)
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
}
