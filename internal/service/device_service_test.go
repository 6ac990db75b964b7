package service

import (
	"errors"
	"testing"

	"github.com/educafric/tracking-backend-go/internal/models"
)

func newTestDeviceService() (*DeviceService, *memStore) {
	m := newMemStore()
	svc := NewDeviceService(memDevices{m}, memSettings{m}, memZones{m}, memContacts{m}, memLocations{m})
	return svc, m
}

func TestRegisterDevice(t *testing.T) {
	svc, _ := newTestDeviceService()

	device, err := svc.Register(models.RegisterDeviceRequest{
		StudentID:  12,
		Name:       "Paul's watch",
		DeviceType: "smartwatch",
		ParentIDs:  []int64{7},
		EmergencyContacts: []models.EmergencyContact{
			{Name: "Maman", Phone: "+237650000001", Priority: 1},
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if device.TrackerToken == "" {
		t.Error("registered device should carry a tracker token")
	}
	if device.Settings == nil {
		t.Fatal("registered device should carry default settings")
	}
	if device.Settings.UpdateInterval != 300 {
		t.Errorf("default update interval = %d, want 300", device.Settings.UpdateInterval)
	}
	if len(device.EmergencyContacts) != 1 {
		t.Errorf("contacts = %d, want 1", len(device.EmergencyContacts))
	}

	byParent, err := svc.ByParent(7)
	if err != nil {
		t.Fatalf("ByParent: %v", err)
	}
	if len(byParent) != 1 || byParent[0].ID != device.ID {
		t.Errorf("ByParent(7) = %v, want the registered device", byParent)
	}

	byStudent, err := svc.ByStudent(12)
	if err != nil {
		t.Fatalf("ByStudent: %v", err)
	}
	if len(byStudent) != 1 {
		t.Errorf("ByStudent(12) = %d devices, want 1", len(byStudent))
	}
}

func TestRegisterRejectsUnknownDeviceType(t *testing.T) {
	svc, _ := newTestDeviceService()

	_, err := svc.Register(models.RegisterDeviceRequest{
		StudentID:  12,
		Name:       "thing",
		DeviceType: "toaster",
	})
	if err == nil {
		t.Error("unknown device type should be rejected")
	}
}

func TestDetailUnknownDevice(t *testing.T) {
	svc, _ := newTestDeviceService()

	_, err := svc.Detail(404)
	if !errors.Is(err, models.ErrDeviceNotFound) {
		t.Errorf("err = %v, want ErrDeviceNotFound", err)
	}
}

func TestUpdateSettingsPartial(t *testing.T) {
	svc, m := newTestDeviceService()
	d := m.addDevice("Paul's watch")

	interval := 60
	updated, err := svc.UpdateSettings(d.ID, models.SettingsPatch{UpdateInterval: &interval})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.UpdateInterval != 60 {
		t.Errorf("interval = %d, want 60", updated.UpdateInterval)
	}
	if updated.SpeedAlertThreshold != 80 {
		t.Errorf("untouched threshold = %v, want default 80", updated.SpeedAlertThreshold)
	}

	tooFast := 5
	if _, err := svc.UpdateSettings(d.ID, models.SettingsPatch{UpdateInterval: &tooFast}); err == nil {
		t.Error("sub-10s interval should be rejected")
	}
}

func TestAddSafeZoneDefaults(t *testing.T) {
	svc, m := newTestDeviceService()
	d := m.addDevice("Paul's watch")

	zone, err := svc.AddSafeZone(d.ID, models.SafeZone{
		Name:      "Collège Vogt",
		CenterLat: 3.8480,
		CenterLon: 11.5021,
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("AddSafeZone: %v", err)
	}
	if zone.Radius != 500 {
		t.Errorf("default radius = %v, want 500", zone.Radius)
	}
	if zone.Category != models.ZoneCategoryOther {
		t.Errorf("default category = %q, want other", zone.Category)
	}

	if _, err := svc.AddSafeZone(404, models.SafeZone{Name: "x"}); !errors.Is(err, models.ErrDeviceNotFound) {
		t.Errorf("err = %v, want ErrDeviceNotFound", err)
	}
}

func TestAddContact(t *testing.T) {
	svc, m := newTestDeviceService()
	d := m.addDevice("Paul's watch")

	contact, err := svc.AddContact(d.ID, models.EmergencyContact{
		Name:     "Papa",
		Phone:    "+237650000002",
		Priority: 2,
	})
	if err != nil {
		t.Fatalf("AddContact: %v", err)
	}
	if contact.DeviceID != d.ID {
		t.Errorf("contact device = %d, want %d", contact.DeviceID, d.ID)
	}

	detail, err := svc.Detail(d.ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if len(detail.EmergencyContacts) != 1 {
		t.Errorf("contacts = %d, want 1", len(detail.EmergencyContacts))
	}

	if _, err := svc.AddContact(404, models.EmergencyContact{Name: "x", Phone: "y"}); !errors.Is(err, models.ErrDeviceNotFound) {
		t.Errorf("err = %v, want ErrDeviceNotFound", err)
	}
}
