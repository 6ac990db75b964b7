package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/educafric/tracking-backend-go/internal/models"
	"github.com/educafric/tracking-backend-go/internal/notify"
	"github.com/educafric/tracking-backend-go/internal/spatial"
)

// HighSpeedThreshold is the speed above which a speed alert escalates from
// medium to high severity, in km/h
const HighSpeedThreshold = 80.0

// offlineGraceFactor scales a device's update interval into the silence
// window tolerated before an offline alert fires
const offlineGraceFactor = 3

// session tracks one actively monitored device
type session struct {
	startedAt      time.Time
	lastSeen       time.Time
	offlineAlerted bool
}

// TrackingService is the safe-zone / alerting rules engine. Each location
// sample is persisted and evaluated for zone transitions, speed and battery;
// an offline watchdog covers devices that go silent while tracked.
type TrackingService struct {
	devices  DeviceStore
	settings SettingsStore
	zones    ZoneStore
	status   StatusStore
	location LocationStore
	alerts   AlertStore
	contacts ContactStore
	geocoder Geocoder
	notifier notify.Notifier

	mu       sync.Mutex
	sessions map[int64]*session

	now func() time.Time
}

// NewTrackingService creates a new tracking service
func NewTrackingService(
	devices DeviceStore,
	settings SettingsStore,
	zones ZoneStore,
	status StatusStore,
	location LocationStore,
	alerts AlertStore,
	contacts ContactStore,
	geocoder Geocoder,
	notifier notify.Notifier,
) *TrackingService {
	return &TrackingService{
		devices:  devices,
		settings: settings,
		zones:    zones,
		status:   status,
		location: location,
		alerts:   alerts,
		contacts: contacts,
		geocoder: geocoder,
		notifier: notifier,
		sessions: make(map[int64]*session),
		now:      time.Now,
	}
}

// Start begins tracking a device: registers a session and marks the device active
func (s *TrackingService) Start(deviceID int64) error {
	if _, err := s.devices.GetByID(deviceID); err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[deviceID] = &session{startedAt: s.now(), lastSeen: s.now()}
	s.mu.Unlock()

	if err := s.devices.SetActive(deviceID, true); err != nil {
		return err
	}

	log.Printf("[Tracking] Started tracking device %d", deviceID)
	return nil
}

// Stop ends tracking a device. Stopping an untracked device only updates the
// active flag.
func (s *TrackingService) Stop(deviceID int64) error {
	s.mu.Lock()
	sess, tracked := s.sessions[deviceID]
	delete(s.sessions, deviceID)
	s.mu.Unlock()

	if err := s.devices.SetActive(deviceID, false); err != nil {
		return err
	}

	if tracked {
		log.Printf("[Tracking] Stopped tracking device %d after %s",
			deviceID, s.now().Sub(sess.startedAt).Round(time.Second))
	} else {
		log.Printf("[Tracking] Stopped tracking device %d", deviceID)
	}
	return nil
}

// IsTracking reports whether a device has an active session
func (s *TrackingService) IsTracking(deviceID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[deviceID]
	return ok
}

// ProcessLocation runs the per-sample pipeline: persist the sample, then
// evaluate safe zones, speed and battery. Generated alerts are returned along
// with the stored sample.
func (s *TrackingService) ProcessLocation(ctx context.Context, deviceID int64, report models.LocationReport) (*models.LocationSample, []models.LocationAlert, error) {
	if !report.Valid() {
		return nil, nil, fmt.Errorf("invalid coordinates (%f, %f)", report.Latitude, report.Longitude)
	}

	device, err := s.devices.GetByID(deviceID)
	if err != nil {
		return nil, nil, err
	}

	settings, err := s.settings.GetByDevice(deviceID)
	if err != nil {
		return nil, nil, err
	}

	ts := report.RecordedAt
	if ts == 0 {
		ts = s.now().Unix()
	}

	// Previous sample is read before the new one is stored; the speed check
	// needs the preceding point.
	prev, err := s.location.Latest(deviceID)
	if err != nil && !errors.Is(err, models.ErrNoLocation) {
		return nil, nil, err
	}

	geo := s.geocoder.Reverse(ctx, report.Latitude, report.Longitude)

	sample, err := s.location.Insert(models.LocationSample{
		DeviceID:   deviceID,
		Latitude:   report.Latitude,
		Longitude:  report.Longitude,
		Accuracy:   report.Accuracy,
		RecordedAt: ts,
		Address:    geo.Address,
		City:       geo.City,
		Country:    geo.Country,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.devices.TouchLastSeen(deviceID, ts); err != nil {
		return nil, nil, err
	}
	if report.BatteryLevel != nil {
		if err := s.devices.UpdateBattery(deviceID, *report.BatteryLevel); err != nil {
			return nil, nil, err
		}
	}

	var alerts []models.LocationAlert

	zoneAlerts, err := s.checkSafeZones(device, sample)
	if err != nil {
		return nil, nil, err
	}
	alerts = append(alerts, zoneAlerts...)

	if a := s.checkSpeed(device, settings, prev, sample); a != nil {
		alerts = append(alerts, *a)
	}

	if a := s.checkBattery(device, settings, report.BatteryLevel, sample); a != nil {
		alerts = append(alerts, *a)
	}

	for i := range alerts {
		if err := s.alerts.Insert(alerts[i]); err != nil {
			return nil, nil, err
		}
		log.Printf("[Tracking] Device %d: %s alert (%s): %s",
			deviceID, alerts[i].Type, alerts[i].Severity, alerts[i].Message)
	}

	s.touchSession(deviceID)

	return sample, alerts, nil
}

// checkSafeZones evaluates every active, in-window zone against the sample.
// Membership transitions emit entry/exit alerts gated by the zone's
// notification toggles; the new membership is recorded either way.
func (s *TrackingService) checkSafeZones(device *models.TrackedDevice, sample *models.LocationSample) ([]models.LocationAlert, error) {
	zones, err := s.zones.ListByDevice(device.ID, true)
	if err != nil {
		return nil, err
	}

	now := time.Unix(sample.RecordedAt, 0)

	var alerts []models.LocationAlert
	for _, zone := range zones {
		if !zone.InWindow(now) {
			continue
		}

		inZone := spatial.WithinZone(sample.Latitude, sample.Longitude, zone.CenterLat, zone.CenterLon, zone.Radius)

		prevInside, known, err := s.status.Get(device.ID, zone.ID)
		if err != nil {
			return nil, err
		}

		// The first evaluation of a zone establishes membership without
		// treating it as a crossing.
		if known && prevInside != inZone {
			// School-zone crossings matter more to guardians than home or
			// family zones.
			severity := models.SeverityLow
			if zone.Category == models.ZoneCategorySchool {
				severity = models.SeverityMedium
			}

			if inZone && zone.NotifyOnEntry {
				alerts = append(alerts, s.newAlert(device.ID, models.AlertTypeEntry, severity,
					fmt.Sprintf("%s entered safe zone %q", device.Name, zone.Name), sample))
			}
			if !inZone && zone.NotifyOnExit {
				alerts = append(alerts, s.newAlert(device.ID, models.AlertTypeExit, severity,
					fmt.Sprintf("%s left safe zone %q", device.Name, zone.Name), sample))
			}
		}

		if err := s.status.Set(device.ID, zone.ID, inZone, sample.RecordedAt); err != nil {
			return nil, err
		}
	}

	return alerts, nil
}

// checkSpeed derives speed from the previous and current samples and emits a
// speed alert above the device's threshold. Skipped when there is no prior
// sample or the elapsed time is non-positive.
func (s *TrackingService) checkSpeed(device *models.TrackedDevice, settings *models.TrackingSettings, prev, sample *models.LocationSample) *models.LocationAlert {
	if prev == nil || settings.SpeedAlertThreshold <= 0 {
		return nil
	}
	if sample.RecordedAt <= prev.RecordedAt {
		return nil
	}

	speed := spatial.SpeedKmh(prev.Latitude, prev.Longitude, prev.RecordedAt,
		sample.Latitude, sample.Longitude, sample.RecordedAt)
	if speed <= settings.SpeedAlertThreshold {
		return nil
	}

	severity := models.SeverityMedium
	if speed > HighSpeedThreshold {
		severity = models.SeverityHigh
	}

	a := s.newAlert(device.ID, models.AlertTypeSpeed, severity,
		fmt.Sprintf("%s is moving at %.1f km/h (limit %.0f km/h)", device.Name, speed, settings.SpeedAlertThreshold), sample)
	return &a
}

// checkBattery emits a battery alert when the reported level crosses the
// configured threshold from above. Repeated reports below the threshold do
// not re-alert.
func (s *TrackingService) checkBattery(device *models.TrackedDevice, settings *models.TrackingSettings, reported *int, sample *models.LocationSample) *models.LocationAlert {
	if reported == nil || settings.BatteryAlertThreshold <= 0 {
		return nil
	}
	if *reported > settings.BatteryAlertThreshold || device.BatteryLevel <= settings.BatteryAlertThreshold {
		return nil
	}

	a := s.newAlert(device.ID, models.AlertTypeBattery, models.SeverityLow,
		fmt.Sprintf("%s battery is low (%d%%)", device.Name, *reported), sample)
	return &a
}

// LastLocation returns the most recent stored sample for a device
func (s *TrackingService) LastLocation(deviceID int64) (*models.LocationSample, error) {
	if _, err := s.devices.GetByID(deviceID); err != nil {
		return nil, err
	}
	return s.location.Latest(deviceID)
}

// ZoneStatus returns the recorded membership for a (device, zone) pair
func (s *TrackingService) ZoneStatus(deviceID, zoneID int64) (*models.ZoneStatus, error) {
	if _, err := s.zones.GetByID(zoneID); err != nil {
		return nil, err
	}
	return s.status.GetStatus(deviceID, zoneID)
}

// SetZoneStatus overrides the recorded membership for a (device, zone) pair
func (s *TrackingService) SetZoneStatus(deviceID, zoneID int64, inside bool) error {
	if _, err := s.zones.GetByID(zoneID); err != nil {
		return err
	}
	return s.status.Set(deviceID, zoneID, inside, s.now().Unix())
}

// DeviceAlerts returns the most recent alerts for a device
func (s *TrackingService) DeviceAlerts(deviceID int64, limit int) ([]models.LocationAlert, error) {
	if _, err := s.devices.GetByID(deviceID); err != nil {
		return nil, err
	}
	return s.alerts.ListByDevice(deviceID, limit)
}

// MarkAlertRead flips the one mutable field on an alert
func (s *TrackingService) MarkAlertRead(id string) error {
	return s.alerts.MarkRead(id)
}

// RecordAlert stores a manually reported alert
func (s *TrackingService) RecordAlert(req models.AlertRequest) (*models.LocationAlert, error) {
	if !models.ValidAlertType(req.Type) {
		return nil, fmt.Errorf("unknown alert type %q", req.Type)
	}
	if req.Severity == "" {
		req.Severity = models.SeverityLow
	}
	if !models.ValidSeverity(req.Severity) {
		return nil, fmt.Errorf("unknown severity %q", req.Severity)
	}
	if _, err := s.devices.GetByID(req.DeviceID); err != nil {
		return nil, err
	}

	a := models.LocationAlert{
		ID:        uuid.NewString(),
		DeviceID:  req.DeviceID,
		Type:      req.Type,
		Severity:  req.Severity,
		Message:   req.Message,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: s.now().Unix(),
	}
	if err := s.alerts.Insert(a); err != nil {
		return nil, err
	}

	return &a, nil
}

// ActivateEmergencyMode raises the sampling frequency, flags the device,
// notifies every emergency contact in parallel and records one critical
// emergency alert. The per-contact dispatch outcome is returned.
func (s *TrackingService) ActivateEmergencyMode(ctx context.Context, deviceID int64) (*models.EmergencyReport, error) {
	device, err := s.devices.GetByID(deviceID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetByDevice(deviceID)
	if err != nil {
		return nil, err
	}

	settings.UpdateInterval = models.EmergencyUpdateInterval
	settings.EmergencyMode = true
	if err := s.settings.Replace(*settings); err != nil {
		return nil, err
	}

	last, err := s.location.Latest(deviceID)
	if err != nil && !errors.Is(err, models.ErrNoLocation) {
		return nil, err
	}

	message := fmt.Sprintf("EMERGENCY: %s needs help", device.Name)
	if last != nil && last.Address != "" {
		message = fmt.Sprintf("EMERGENCY: %s needs help. Last seen near %s", device.Name, last.Address)
	}

	contacts, err := s.contacts.ListByDevice(deviceID)
	if err != nil {
		return nil, err
	}

	dispatches := make([]models.ContactDispatch, len(contacts))
	var wg sync.WaitGroup
	for i, contact := range contacts {
		wg.Add(1)
		go func(i int, contact models.EmergencyContact) {
			defer wg.Done()
			d := models.ContactDispatch{ContactID: contact.ID, Name: contact.Name, Phone: contact.Phone}
			if err := s.notifier.NotifyContact(ctx, contact, message); err != nil {
				d.Error = err.Error()
				log.Printf("[Tracking] Emergency notification to %s failed: %v", contact.Name, err)
			} else {
				d.Sent = true
			}
			dispatches[i] = d
		}(i, contact)
	}
	wg.Wait()

	alert := models.LocationAlert{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		Type:      models.AlertTypeEmergency,
		Severity:  models.SeverityCritical,
		Message:   message,
		CreatedAt: s.now().Unix(),
	}
	if last != nil {
		alert.Latitude = &last.Latitude
		alert.Longitude = &last.Longitude
	}
	if err := s.alerts.Insert(alert); err != nil {
		return nil, err
	}

	report := &models.EmergencyReport{
		DeviceID:   deviceID,
		AlertID:    alert.ID,
		Dispatches: dispatches,
	}
	for _, d := range dispatches {
		if d.Sent {
			report.Notified++
		} else {
			report.Failed++
		}
	}

	log.Printf("[Tracking] Emergency mode activated for device %d: %d notified, %d failed",
		deviceID, report.Notified, report.Failed)
	return report, nil
}

// RunOfflineMonitor periodically sweeps active sessions and emits one offline
// alert per outage for devices silent longer than three update intervals.
// Blocks until the context is cancelled.
func (s *TrackingService) RunOfflineMonitor(ctx context.Context, sweep time.Duration) {
	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOffline()
		}
	}
}

func (s *TrackingService) sweepOffline() {
	type stale struct {
		deviceID int64
		silent   time.Duration
	}

	now := s.now()

	s.mu.Lock()
	var candidates []stale
	for id, sess := range s.sessions {
		if !sess.offlineAlerted {
			candidates = append(candidates, stale{deviceID: id, silent: now.Sub(sess.lastSeen)})
		}
	}
	s.mu.Unlock()

	for _, c := range candidates {
		settings, err := s.settings.GetByDevice(c.deviceID)
		if err != nil {
			log.Printf("[Tracking] Offline sweep: settings for device %d: %v", c.deviceID, err)
			continue
		}

		grace := time.Duration(settings.UpdateInterval*offlineGraceFactor) * time.Second
		if c.silent <= grace {
			continue
		}

		device, err := s.devices.GetByID(c.deviceID)
		if err != nil {
			continue
		}

		a := models.LocationAlert{
			ID:        uuid.NewString(),
			DeviceID:  c.deviceID,
			Type:      models.AlertTypeOffline,
			Severity:  models.SeverityMedium,
			Message:   fmt.Sprintf("%s has not reported for %s", device.Name, c.silent.Round(time.Second)),
			CreatedAt: now.Unix(),
		}
		if err := s.alerts.Insert(a); err != nil {
			log.Printf("[Tracking] Offline sweep: insert alert for device %d: %v", c.deviceID, err)
			continue
		}

		s.mu.Lock()
		if sess, ok := s.sessions[c.deviceID]; ok {
			sess.offlineAlerted = true
		}
		s.mu.Unlock()

		log.Printf("[Tracking] Device %d flagged offline after %s", c.deviceID, c.silent.Round(time.Second))
	}
}

// touchSession refreshes the session watchdog after a successful sample
func (s *TrackingService) touchSession(deviceID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[deviceID]; ok {
		sess.lastSeen = s.now()
		sess.offlineAlerted = false
	}
}

func (s *TrackingService) newAlert(deviceID int64, typ, severity, message string, sample *models.LocationSample) models.LocationAlert {
	a := models.LocationAlert{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		Type:      typ,
		Severity:  severity,
		Message:   message,
		CreatedAt: sample.RecordedAt,
	}
	a.Latitude = &sample.Latitude
	a.Longitude = &sample.Longitude
	return a
}
