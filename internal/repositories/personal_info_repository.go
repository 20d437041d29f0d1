package repositories

import (
	"database/sql"
	"fmt"

	"admissions/internal/models"
)

type PersonalInfoRepository interface {
	Create(info *models.PersonalInfo) error
	GetByApplicationID(applicationID string) (*models.PersonalInfo, error)
	Exists(applicationID string) (bool, error)
}

type personalInfoRepository struct {
	DB *sql.DB
}

func NewPersonalInfoRepository(db *sql.DB) PersonalInfoRepository {
	return &personalInfoRepository{DB: db}
}

func (r *personalInfoRepository) Create(info *models.PersonalInfo) error {
	const q = `
		INSERT INTO personal_info (
			application_id, first_name, middle_name, last_name, email,
			mobile_number, whatsapp_number, dob, gender, nationality,
			caste, marital_status, special_category, religion,
			aadhar_number, voter_id, weightage_claimed,
			university_reg_num, university_enr_num,
			perm_address, perm_city, perm_state, perm_pin,
			temp_address, temp_city, temp_state, temp_pin,
			fathers_name, mothers_name, parents_mobile,
			photo_ref, signature_ref
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
		        $18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32)
		RETURNING created_at
	`
	err := r.DB.QueryRow(q,
		info.ApplicationID, info.FirstName, info.MiddleName, info.LastName, info.Email,
		info.MobileNumber, info.WhatsappNumber, info.DateOfBirth, info.Gender, info.Nationality,
		info.Caste, info.MaritalStatus, info.SpecialCategory, info.Religion,
		info.AadharNumber, info.VoterID, info.WeightageClaimed,
		info.UniversityRegNum, info.UniversityEnrNum,
		info.PermanentAddress.Address, info.PermanentAddress.City, info.PermanentAddress.State, info.PermanentAddress.Pin,
		info.TemporaryAddress.Address, info.TemporaryAddress.City, info.TemporaryAddress.State, info.TemporaryAddress.Pin,
		info.FathersName, info.MothersName, info.ParentsMobile,
		info.PhotoRef, info.SignatureRef,
	).Scan(&info.CreatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *personalInfoRepository) GetByApplicationID(applicationID string) (*models.PersonalInfo, error) {
	const q = `
		SELECT application_id, first_name, middle_name, last_name, email,
		       mobile_number, whatsapp_number, dob, gender, nationality,
		       caste, marital_status, special_category, religion,
		       aadhar_number, voter_id, weightage_claimed,
		       university_reg_num, university_enr_num,
		       perm_address, perm_city, perm_state, perm_pin,
		       temp_address, temp_city, temp_state, temp_pin,
		       fathers_name, mothers_name, parents_mobile,
		       photo_ref, signature_ref, created_at
		FROM personal_info
		WHERE application_id = $1
	`
	info := &models.PersonalInfo{}
	err := r.DB.QueryRow(q, applicationID).Scan(
		&info.ApplicationID, &info.FirstName, &info.MiddleName, &info.LastName, &info.Email,
		&info.MobileNumber, &info.WhatsappNumber, &info.DateOfBirth, &info.Gender, &info.Nationality,
		&info.Caste, &info.MaritalStatus, &info.SpecialCategory, &info.Religion,
		&info.AadharNumber, &info.VoterID, &info.WeightageClaimed,
		&info.UniversityRegNum, &info.UniversityEnrNum,
		&info.PermanentAddress.Address, &info.PermanentAddress.City, &info.PermanentAddress.State, &info.PermanentAddress.Pin,
		&info.TemporaryAddress.Address, &info.TemporaryAddress.City, &info.TemporaryAddress.State, &info.TemporaryAddress.Pin,
		&info.FathersName, &info.MothersName, &info.ParentsMobile,
		&info.PhotoRef, &info.SignatureRef, &info.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get personal info: %w", err)
	}
	return info, nil
}

func (r *personalInfoRepository) Exists(applicationID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM personal_info WHERE application_id=$1)`, applicationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("personal info exists: %w", err)
	}
	return exists, nil
}
