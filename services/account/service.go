package account

import (
	"fmt"
	"time"

	doctorRepo "carebridge/database/repository/doctor"
	patientRepo "carebridge/database/repository/patient"
	pharmacistRepo "carebridge/database/repository/pharmacist"
	"carebridge/models"
	"carebridge/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long issued auth tokens stay valid.
const TokenTTL = 24 * time.Hour

// DefaultAccountService is the production AccountService.
type DefaultAccountService struct {
	Doctors     doctorRepo.DoctorRepository
	Patients    patientRepo.PatientRepository
	Pharmacists pharmacistRepo.PharmacistRepository
}

// emailTaken reports whether the email is registered under any role.
func (s *DefaultAccountService) emailTaken(email string) (bool, error) {
	proj := bson.M{"id": 1}

	patient, err := s.Patients.GetByEmailWithProjection(email, proj)
	if err != nil {
		return false, err
	}
	if patient != nil {
		return true, nil
	}

	doctor, err := s.Doctors.GetByEmailWithProjection(email, proj)
	if err != nil {
		return false, err
	}
	if doctor != nil {
		return true, nil
	}

	pharmacist, err := s.Pharmacists.GetByEmailWithProjection(email, proj)
	if err != nil {
		return false, err
	}
	return pharmacist != nil, nil
}

func (s *DefaultAccountService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	taken, err := s.emailTaken(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if taken {
		return nil, utils.ConflictError{Reason: "an account with this email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := uuid.New().String()
	switch req.Role {
	case models.RolePatient:
		patient := &models.Patient{
			ID:           id,
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			Age:          req.Age,
			Height:       req.Height,
			Weight:       req.Weight,
		}
		if err := s.Patients.Create(patient); err != nil {
			return nil, fmt.Errorf("failed to create patient: %w", err)
		}
	case models.RoleDoctor:
		if req.Specialization == "" || req.LicenseNumber == "" {
			return nil, utils.ValidationError{Reason: "specialization and licenseNumber are required for doctors"}
		}
		doctor := &models.Doctor{
			ID:                id,
			Username:          req.Username,
			Email:             req.Email,
			PasswordHash:      string(hash),
			Specialization:    req.Specialization,
			YearsOfExperience: req.YearsOfExperience,
			College:           req.College,
			LicenseNumber:     req.LicenseNumber,
		}
		if err := s.Doctors.Create(doctor); err != nil {
			return nil, fmt.Errorf("failed to create doctor: %w", err)
		}
	case models.RolePharmacist:
		if req.Pharmacy == "" || req.LicenseNumber == "" {
			return nil, utils.ValidationError{Reason: "pharmacy and licenseNumber are required for pharmacists"}
		}
		pharmacist := &models.Pharmacist{
			ID:                id,
			Username:          req.Username,
			Email:             req.Email,
			PasswordHash:      string(hash),
			YearsOfExperience: req.YearsOfExperience,
			LicenseNumber:     req.LicenseNumber,
			Pharmacy:          req.Pharmacy,
		}
		if err := s.Pharmacists.Create(pharmacist); err != nil {
			return nil, fmt.Errorf("failed to create pharmacist: %w", err)
		}
	default:
		return nil, utils.ValidationError{Reason: fmt.Sprintf("invalid role %q", req.Role)}
	}

	token, err := utils.GenerateToken(id, req.Role, req.Email, TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	utils.GetLogger().Info("account registered",
		zap.String("id", id), zap.String("role", req.Role))
	return &models.AuthResponse{
		ID:    id,
		Name:  req.Username,
		Email: req.Email,
		Token: token,
		Role:  req.Role,
	}, nil
}

// credentials is the minimal account identity resolved during login.
type credentials struct {
	id           string
	username     string
	passwordHash string
	role         string
}

// findByEmail probes the three role collections for the email.
func (s *DefaultAccountService) findByEmail(email string) (*credentials, error) {
	if patient, err := s.Patients.GetByEmailWithProjection(email, nil); err != nil {
		return nil, err
	} else if patient != nil {
		return &credentials{patient.ID, patient.Username, patient.PasswordHash, models.RolePatient}, nil
	}

	if doctor, err := s.Doctors.GetByEmailWithProjection(email, nil); err != nil {
		return nil, err
	} else if doctor != nil {
		return &credentials{doctor.ID, doctor.Username, doctor.PasswordHash, models.RoleDoctor}, nil
	}

	if pharmacist, err := s.Pharmacists.GetByEmailWithProjection(email, nil); err != nil {
		return nil, err
	} else if pharmacist != nil {
		return &credentials{pharmacist.ID, pharmacist.Username, pharmacist.PasswordHash, models.RolePharmacist}, nil
	}

	return nil, nil
}

func (s *DefaultAccountService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	creds, err := s.findByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("login: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if creds == nil {
		return nil, utils.ValidationError{Reason: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.passwordHash), []byte(req.Password)); err != nil {
		return nil, utils.ValidationError{Reason: "invalid credentials"}
	}

	token, err := utils.GenerateToken(creds.id, creds.role, req.Email, TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		ID:    creds.id,
		Name:  creds.username,
		Email: req.Email,
		Token: token,
		Role:  creds.role,
	}, nil
}

func (s *DefaultAccountService) Validate(id, role string) (*models.AuthResponse, error) {
	switch role {
	case models.RolePatient:
		patient, err := s.Patients.GetByIDWithProjection(id, bson.M{"id": 1, "username": 1, "email": 1})
		if err != nil {
			return nil, fmt.Errorf("failed to validate patient: %w", err)
		}
		if patient == nil {
			return nil, utils.NotFoundError{Resource: "account"}
		}
		return &models.AuthResponse{ID: patient.ID, Name: patient.Username, Email: patient.Email, Role: role}, nil
	case models.RoleDoctor:
		doctor, err := s.Doctors.GetByIDWithProjection(id, bson.M{"id": 1, "username": 1, "email": 1})
		if err != nil {
			return nil, fmt.Errorf("failed to validate doctor: %w", err)
		}
		if doctor == nil {
			return nil, utils.NotFoundError{Resource: "account"}
		}
		return &models.AuthResponse{ID: doctor.ID, Name: doctor.Username, Email: doctor.Email, Role: role}, nil
	case models.RolePharmacist:
		pharmacist, err := s.Pharmacists.GetByIDWithProjection(id, bson.M{"id": 1, "username": 1, "email": 1})
		if err != nil {
			return nil, fmt.Errorf("failed to validate pharmacist: %w", err)
		}
		if pharmacist == nil {
			return nil, utils.NotFoundError{Resource: "account"}
		}
		return &models.AuthResponse{ID: pharmacist.ID, Name: pharmacist.Username, Email: pharmacist.Email, Role: role}, nil
	default:
		return nil, utils.ValidationError{Reason: fmt.Sprintf("invalid role %q", role)}
	}
}
