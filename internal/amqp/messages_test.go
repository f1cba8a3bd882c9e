package amqp

import "testing"

func TestDonationRecordedMessageJSON(t *testing.T) {
	msg := NewDonationRecordedMessage(42, 7, 1, 60000)
	if msg.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := DonationRecordedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.DonationID != 42 || got.DonorID != 7 || got.CampaignID != 1 || got.AmountPaise != 60000 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestDonationRecordedMessageFromJSONInvalid(t *testing.T) {
	if _, err := DonationRecordedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
