package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/educafric/tracking-backend-go/internal/geocode"
	"github.com/educafric/tracking-backend-go/internal/models"
)

var errSMSGateway = errors.New("sms gateway unavailable")

// memStore holds in-memory state shared by the per-interface fakes below,
// substituting for the sqlite repositories in service tests.
type memStore struct {
	mu        sync.Mutex
	devices   map[int64]models.TrackedDevice
	settings  map[int64]models.TrackingSettings
	zones     map[int64]models.SafeZone
	status    map[[2]int64]models.ZoneStatus
	locations map[int64][]models.LocationSample
	alerts    []models.LocationAlert
	contacts  map[int64][]models.EmergencyContact
	guardians map[int64][]int64
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		devices:   make(map[int64]models.TrackedDevice),
		settings:  make(map[int64]models.TrackingSettings),
		zones:     make(map[int64]models.SafeZone),
		status:    make(map[[2]int64]models.ZoneStatus),
		locations: make(map[int64][]models.LocationSample),
		contacts:  make(map[int64][]models.EmergencyContact),
		guardians: make(map[int64][]int64),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// addDevice seeds a device with default settings
func (m *memStore) addDevice(name string) models.TrackedDevice {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := models.TrackedDevice{
		ID:           m.id(),
		StudentID:    1,
		Name:         name,
		DeviceType:   "smartwatch",
		TrackerToken: "token",
		BatteryLevel: 100,
	}
	m.devices[d.ID] = d
	m.settings[d.ID] = models.DefaultSettings(d.ID)
	return d
}

func (m *memStore) addZone(z models.SafeZone) models.SafeZone {
	m.mu.Lock()
	defer m.mu.Unlock()
	z.ID = m.id()
	m.zones[z.ID] = z
	return z
}

func (m *memStore) addContact(deviceID int64, name, phone string) models.EmergencyContact {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := models.EmergencyContact{ID: m.id(), DeviceID: deviceID, Name: name, Phone: phone, Priority: 1}
	m.contacts[deviceID] = append(m.contacts[deviceID], c)
	return c
}

// alertsOf returns all stored alerts of a type for a device, oldest first
func (m *memStore) alertsOf(deviceID int64, typ string) []models.LocationAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.LocationAlert
	for _, a := range m.alerts {
		if a.DeviceID == deviceID && a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

// memDevices implements DeviceStore
type memDevices struct{ m *memStore }

func (f memDevices) Create(req models.RegisterDeviceRequest, trackerToken string) (*models.TrackedDevice, error) {
	m := f.m
	m.mu.Lock()
	defer m.mu.Unlock()
	d := models.TrackedDevice{
		ID:           m.id(),
		StudentID:    req.StudentID,
		Name:         req.Name,
		DeviceType:   req.DeviceType,
		MACAddress:   req.MACAddress,
		IMEI:         req.IMEI,
		TrackerToken: trackerToken,
		BatteryLevel: 100,
	}
	m.devices[d.ID] = d
	m.settings[d.ID] = models.DefaultSettings(d.ID)
	m.guardians[d.ID] = append([]int64(nil), req.ParentIDs...)
	for _, c := range req.EmergencyContacts {
		c.ID = m.id()
		c.DeviceID = d.ID
		m.contacts[d.ID] = append(m.contacts[d.ID], c)
	}
	out := d
	return &out, nil
}

func (f memDevices) GetByID(id int64) (*models.TrackedDevice, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	d, ok := f.m.devices[id]
	if !ok {
		return nil, models.ErrDeviceNotFound
	}
	out := d
	return &out, nil
}

func (f memDevices) Update(id int64, patch models.DevicePatch) (*models.TrackedDevice, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	d, ok := f.m.devices[id]
	if !ok {
		return nil, models.ErrDeviceNotFound
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.BatteryLevel != nil {
		d.BatteryLevel = *patch.BatteryLevel
	}
	if patch.IsActive != nil {
		d.IsActive = *patch.IsActive
	}
	f.m.devices[id] = d
	out := d
	return &out, nil
}

func (f memDevices) SetActive(id int64, active bool) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	d, ok := f.m.devices[id]
	if !ok {
		return models.ErrDeviceNotFound
	}
	d.IsActive = active
	f.m.devices[id] = d
	return nil
}

func (f memDevices) TouchLastSeen(id int64, ts int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	d, ok := f.m.devices[id]
	if !ok {
		return models.ErrDeviceNotFound
	}
	d.LastSeen = &ts
	f.m.devices[id] = d
	return nil
}

func (f memDevices) UpdateBattery(id int64, level int) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	d, ok := f.m.devices[id]
	if !ok {
		return models.ErrDeviceNotFound
	}
	d.BatteryLevel = level
	f.m.devices[id] = d
	return nil
}

func (f memDevices) ListByStudent(studentID int64) ([]models.TrackedDevice, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.TrackedDevice
	for _, d := range f.m.devices {
		if d.StudentID == studentID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f memDevices) ListByParent(parentID int64) ([]models.TrackedDevice, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.TrackedDevice
	for id, parents := range f.m.guardians {
		for _, p := range parents {
			if p == parentID {
				out = append(out, f.m.devices[id])
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memSettings implements SettingsStore
type memSettings struct{ m *memStore }

func (f memSettings) GetByDevice(deviceID int64) (*models.TrackingSettings, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	s, ok := f.m.settings[deviceID]
	if !ok {
		return nil, models.ErrSettingsNotFound
	}
	out := s
	return &out, nil
}

func (f memSettings) Replace(s models.TrackingSettings) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.settings[s.DeviceID]; !ok {
		return models.ErrSettingsNotFound
	}
	f.m.settings[s.DeviceID] = s
	return nil
}

// memZones implements ZoneStore
type memZones struct{ m *memStore }

func (f memZones) Create(z models.SafeZone) (*models.SafeZone, error) {
	z = f.m.addZone(z)
	out := z
	return &out, nil
}

func (f memZones) GetByID(id int64) (*models.SafeZone, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	z, ok := f.m.zones[id]
	if !ok {
		return nil, models.ErrZoneNotFound
	}
	out := z
	return &out, nil
}

func (f memZones) ListByDevice(deviceID int64, activeOnly bool) ([]models.SafeZone, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.SafeZone
	for _, z := range f.m.zones {
		if z.DeviceID != deviceID {
			continue
		}
		if activeOnly && !z.IsActive {
			continue
		}
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memStatus implements StatusStore
type memStatus struct{ m *memStore }

func (f memStatus) Get(deviceID, zoneID int64) (bool, bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	st, ok := f.m.status[[2]int64{deviceID, zoneID}]
	if !ok {
		return false, false, nil
	}
	return st.Inside, true, nil
}

func (f memStatus) Set(deviceID, zoneID int64, inside bool, ts int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.status[[2]int64{deviceID, zoneID}] = models.ZoneStatus{
		DeviceID: deviceID, ZoneID: zoneID, Inside: inside, UpdatedAt: ts,
	}
	return nil
}

func (f memStatus) GetStatus(deviceID, zoneID int64) (*models.ZoneStatus, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	st, ok := f.m.status[[2]int64{deviceID, zoneID}]
	if !ok {
		return nil, models.ErrZoneNotFound
	}
	out := st
	return &out, nil
}

// memLocations implements LocationStore
type memLocations struct{ m *memStore }

func (f memLocations) Insert(s models.LocationSample) (*models.LocationSample, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	s.ID = f.m.id()
	f.m.locations[s.DeviceID] = append(f.m.locations[s.DeviceID], s)
	out := s
	return &out, nil
}

func (f memLocations) Latest(deviceID int64) (*models.LocationSample, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	samples := f.m.locations[deviceID]
	if len(samples) == 0 {
		return nil, models.ErrNoLocation
	}
	best := samples[0]
	for _, s := range samples[1:] {
		if s.RecordedAt >= best.RecordedAt {
			best = s
		}
	}
	out := best
	return &out, nil
}

// memAlerts implements AlertStore
type memAlerts struct{ m *memStore }

func (f memAlerts) Insert(a models.LocationAlert) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.alerts = append(f.m.alerts, a)
	return nil
}

func (f memAlerts) ListByDevice(deviceID int64, limit int) ([]models.LocationAlert, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []models.LocationAlert
	for i := len(f.m.alerts) - 1; i >= 0 && len(out) < limit; i-- {
		if f.m.alerts[i].DeviceID == deviceID {
			out = append(out, f.m.alerts[i])
		}
	}
	return out, nil
}

func (f memAlerts) MarkRead(id string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for i := range f.m.alerts {
		if f.m.alerts[i].ID == id {
			f.m.alerts[i].IsRead = true
			return nil
		}
	}
	return models.ErrAlertNotFound
}

// memContacts implements ContactStore
type memContacts struct{ m *memStore }

func (f memContacts) Create(c models.EmergencyContact) (*models.EmergencyContact, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	c.ID = f.m.id()
	f.m.contacts[c.DeviceID] = append(f.m.contacts[c.DeviceID], c)
	out := c
	return &out, nil
}

func (f memContacts) ListByDevice(deviceID int64) ([]models.EmergencyContact, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return append([]models.EmergencyContact(nil), f.m.contacts[deviceID]...), nil
}

// fakeGeocoder returns a canned result without network access
type fakeGeocoder struct{}

func (fakeGeocoder) Reverse(_ context.Context, lat, lon float64) geocode.Result {
	return geocode.Result{
		Latitude:  lat,
		Longitude: lon,
		Address:   "Avenue Kennedy, Yaoundé",
		City:      "Yaoundé",
		Country:   "Cameroon",
		Accuracy:  10,
	}
}

// fakeNotifier records dispatches and can fail selected phone numbers
type fakeNotifier struct {
	mu        sync.Mutex
	sent      []string
	failPhone map[string]bool
}

func (n *fakeNotifier) NotifyContact(_ context.Context, c models.EmergencyContact, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failPhone[c.Phone] {
		return errSMSGateway
	}
	n.sent = append(n.sent, c.Phone)
	return nil
}
