package models

import "time"

type BankDetails struct {
	ModeOfPayment  string `json:"modeOfPayment,omitempty"`
	Holder         string `json:"holder,omitempty"`
	BranchAddress  string `json:"branchAddress,omitempty"`
	BankName       string `json:"bankName,omitempty"`
	CurrentAccount string `json:"currentAccount,omitempty"`
	IFSC           string `json:"ifsc,omitempty"`
}

type Company struct {
	ID          int64       `json:"id"`
	Key         string      `json:"key"`
	Name        string      `json:"name"`
	Address     string      `json:"address,omitempty"`
	Website     string      `json:"website,omitempty"`
	GST         string      `json:"gst,omitempty"`
	Mobile      string      `json:"mobile,omitempty"`
	Logo        string      `json:"logo,omitempty"`
	Stamp       string      `json:"stamp,omitempty"`
	Description string      `json:"description,omitempty"`
	Bank        BankDetails `json:"bank"`
	CreatedBy   *int64      `json:"createdBy,omitempty"`
	UpdatedBy   *int64      `json:"updatedBy,omitempty"`
	IsDeleted   bool        `json:"isDeleted"`
	DeletedAt   *time.Time  `json:"deletedAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type CompanyPayload struct {
	Key         *string      `json:"key"`
	Name        *string      `json:"name"`
	Address     *string      `json:"address"`
	Website     *string      `json:"website"`
	GST         *string      `json:"gst"`
	Mobile      *string      `json:"mobile"`
	Logo        *string      `json:"logo"`
	Stamp       *string      `json:"stamp"`
	Description *string      `json:"description"`
	Bank        *BankDetails `json:"bank"`
}
