package models

import "time"

type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pin     string `json:"pin"`
}

type PersonalInfo struct {
	ApplicationID    string    `json:"application_id"`
	FirstName        string    `json:"first_name"`
	MiddleName       string    `json:"middle_name,omitempty"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	MobileNumber     string    `json:"mobile_number"`
	WhatsappNumber   string    `json:"whatsapp_number,omitempty"`
	DateOfBirth      string    `json:"dob"`
	Gender           string    `json:"gender"`
	Nationality      string    `json:"nationality"`
	Caste            string    `json:"caste,omitempty"`
	MaritalStatus    string    `json:"marital_status,omitempty"`
	SpecialCategory  string    `json:"special_category,omitempty"`
	Religion         string    `json:"religion,omitempty"`
	AadharNumber     string    `json:"aadhar_number,omitempty"`
	VoterID          string    `json:"voter_id,omitempty"`
	WeightageClaimed string    `json:"weightage_claimed,omitempty"`
	UniversityRegNum string    `json:"university_reg_num,omitempty"`
	UniversityEnrNum string    `json:"university_enr_num,omitempty"`
	PermanentAddress Address   `json:"permanent_address"`
	TemporaryAddress Address   `json:"temporary_address"`
	FathersName      string    `json:"fathers_name"`
	MothersName      string    `json:"mothers_name"`
	ParentsMobile    string    `json:"parents_mobile,omitempty"`
	PhotoRef         string    `json:"candidate_photo"`
	SignatureRef     string    `json:"candidate_signature"`
	CreatedAt        time.Time `json:"created_at"`
}

// FullName joins the name parts, skipping an absent middle name.
func (p *PersonalInfo) FullName() string {
	if p.MiddleName == "" {
		return p.FirstName + " " + p.LastName
	}
	return p.FirstName + " " + p.MiddleName + " " + p.LastName
}
