package account

import (
	"errors"
	"testing"
	"time"

	"carebridge/models"
	"carebridge/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type fakePatientRepo struct {
	byEmail map[string]*models.Patient
	created []*models.Patient
}

func (f *fakePatientRepo) Create(p *models.Patient) error {
	f.created = append(f.created, p)
	if f.byEmail == nil {
		f.byEmail = map[string]*models.Patient{}
	}
	f.byEmail[p.Email] = p
	return nil
}
func (f *fakePatientRepo) Update(*models.Patient) error { return nil }
func (f *fakePatientRepo) Delete(string) error          { return nil }
func (f *fakePatientRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Patient, error) {
	for _, p := range f.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePatientRepo) GetByEmailWithProjection(email string, _ bson.M) (*models.Patient, error) {
	return f.byEmail[email], nil
}
func (f *fakePatientRepo) GetManyByIDs([]string, bson.M) ([]models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) UpdateSetDocument(string, bson.M) error          { return nil }
func (f *fakePatientRepo) PushToArray(string, string, interface{}) error   { return nil }
func (f *fakePatientRepo) PullFromArray(string, string, interface{}) error { return nil }

type fakeDoctorRepo struct {
	byEmail map[string]*models.Doctor
}

func (f *fakeDoctorRepo) Create(d *models.Doctor) error {
	if f.byEmail == nil {
		f.byEmail = map[string]*models.Doctor{}
	}
	f.byEmail[d.Email] = d
	return nil
}
func (f *fakeDoctorRepo) Update(*models.Doctor) error { return nil }
func (f *fakeDoctorRepo) Delete(string) error         { return nil }
func (f *fakeDoctorRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Doctor, error) {
	for _, d := range f.byEmail {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}
func (f *fakeDoctorRepo) GetByEmailWithProjection(email string, _ bson.M) (*models.Doctor, error) {
	return f.byEmail[email], nil
}
func (f *fakeDoctorRepo) UpdateSetDocument(string, bson.M) error               { return nil }
func (f *fakeDoctorRepo) AddPatient(string, string) error                      { return nil }
func (f *fakeDoctorRepo) RemovePatient(string, string) error                   { return nil }
func (f *fakeDoctorRepo) Search(string, string) ([]models.DoctorPublic, error) { return nil, nil }
func (f *fakeDoctorRepo) GetPage(int, int) (*models.DoctorPage, error)         { return nil, nil }
func (f *fakeDoctorRepo) UpsertSchedule(string, models.Schedule) error         { return nil }
func (f *fakeDoctorRepo) GetSchedules(string) ([]models.Schedule, error)       { return nil, nil }
func (f *fakeDoctorRepo) GetScheduleByDate(string, time.Time) (*models.Schedule, error) {
	return nil, nil
}
func (f *fakeDoctorRepo) UpdateSlotStatus(string, string, models.SlotStatus, string) error {
	return nil
}

type fakePharmacistRepo struct {
	byEmail map[string]*models.Pharmacist
}

func (f *fakePharmacistRepo) Create(p *models.Pharmacist) error {
	if f.byEmail == nil {
		f.byEmail = map[string]*models.Pharmacist{}
	}
	f.byEmail[p.Email] = p
	return nil
}
func (f *fakePharmacistRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Pharmacist, error) {
	for _, p := range f.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePharmacistRepo) GetByEmailWithProjection(email string, _ bson.M) (*models.Pharmacist, error) {
	return f.byEmail[email], nil
}
func (f *fakePharmacistRepo) UpdateSetDocument(string, bson.M) error { return nil }

func newAccountService() *DefaultAccountService {
	return &DefaultAccountService{
		Doctors:     &fakeDoctorRepo{},
		Patients:    &fakePatientRepo{},
		Pharmacists: &fakePharmacistRepo{},
	}
}

func TestRegisterAndLoginPatient(t *testing.T) {
	svc := newAccountService()

	resp, err := svc.Register(models.RegisterRequest{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "hunter22",
		Role:     models.RolePatient,
		Age:      30,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Role != models.RolePatient || resp.Token == "" || resp.ID == "" {
		t.Fatalf("unexpected registration response: %+v", resp)
	}

	login, err := svc.Login(models.LoginRequest{Email: "asha@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.ID != resp.ID || login.Role != models.RolePatient {
		t.Errorf("login identity mismatch: %+v", login)
	}
}

func TestRegisterRejectsDuplicateEmailAcrossRoles(t *testing.T) {
	svc := newAccountService()

	_, err := svc.Register(models.RegisterRequest{
		Username: "asha", Email: "shared@example.com", Password: "hunter22",
		Role: models.RolePatient,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = svc.Register(models.RegisterRequest{
		Username: "dr.shared", Email: "shared@example.com", Password: "hunter22",
		Role: models.RoleDoctor, Specialization: "derm", LicenseNumber: "L-1",
	})
	var conflict utils.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Register error = %v, want ConflictError", err)
	}
}

func TestRegisterRoleFieldValidation(t *testing.T) {
	svc := newAccountService()

	cases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"doctor without license", models.RegisterRequest{
			Username: "d", Email: "d@example.com", Password: "hunter22",
			Role: models.RoleDoctor, Specialization: "derm",
		}},
		{"pharmacist without pharmacy", models.RegisterRequest{
			Username: "p", Email: "p@example.com", Password: "hunter22",
			Role: models.RolePharmacist, LicenseNumber: "L-2",
		}},
		{"unknown role", models.RegisterRequest{
			Username: "x", Email: "x@example.com", Password: "hunter22",
			Role: "admin",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.req)
			var validation utils.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("Register error = %v, want ValidationError", err)
			}
		})
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAccountService()

	if _, err := svc.Register(models.RegisterRequest{
		Username: "asha", Email: "asha@example.com", Password: "hunter22",
		Role: models.RolePatient,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, req := range []models.LoginRequest{
		{Email: "asha@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "hunter22"},
	} {
		if _, err := svc.Login(req); err == nil {
			t.Errorf("Login(%q) succeeded, want error", req.Email)
		}
	}
}

func TestValidateResolvesAccount(t *testing.T) {
	svc := newAccountService()

	resp, err := svc.Register(models.RegisterRequest{
		Username: "dr.rao", Email: "rao@example.com", Password: "hunter22",
		Role: models.RoleDoctor, Specialization: "cardio", LicenseNumber: "L-9",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Validate(resp.ID, models.RoleDoctor)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Name != "dr.rao" || got.Email != "rao@example.com" {
		t.Errorf("Validate = %+v", got)
	}

	_, err = svc.Validate("missing", models.RoleDoctor)
	var notFound utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Validate error = %v, want NotFoundError", err)
	}
}
