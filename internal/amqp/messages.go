package amqp

import (
	"encoding/json"
	"time"
)

// DonationRecordedMessage announces a confirmed donation to the export
// worker. It carries only identifiers and the amount; the worker reads the
// full journal entry from the local database.
type DonationRecordedMessage struct {
	DonationID  int64     `json:"donation_id"`
	DonorID     int64     `json:"donor_id"`
	CampaignID  int64     `json:"campaign_id"`
	AmountPaise int64     `json:"amount_paise"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewDonationRecordedMessage creates a message stamped with the current time.
func NewDonationRecordedMessage(donationID, donorID, campaignID, amountPaise int64) *DonationRecordedMessage {
	return &DonationRecordedMessage{
		DonationID:  donationID,
		DonorID:     donorID,
		CampaignID:  campaignID,
		AmountPaise: amountPaise,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *DonationRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DonationRecordedMessageFromJSON creates a message from JSON bytes.
func DonationRecordedMessageFromJSON(data []byte) (*DonationRecordedMessage, error) {
	var msg DonationRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
