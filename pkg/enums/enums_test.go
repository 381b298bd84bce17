package enums

import "testing"

func TestParseRoomStatus(t *testing.T) {
	status, err := ParseRoomStatus("out_of_service")
	if err != nil {
		t.Fatalf("ParseRoomStatus returned error: %v", err)
	}
	if status != RoomStatusOutOfService {
		t.Fatalf("unexpected status %s", status)
	}
	if _, err := ParseRoomStatus("demolished"); err == nil {
		t.Fatal("expected error for unknown room status")
	}
}

func TestBookingStatusValidity(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusConfirmed,
		BookingStatusCheckedIn,
		BookingStatusCheckedOut,
		BookingStatusCancelled,
	} {
		if !status.IsValid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if BookingStatus("pending").IsValid() {
		t.Fatal("pending is not a booking status")
	}
}

func TestPaymentStatusIsRefund(t *testing.T) {
	if !PaymentStatusRefunded.IsRefund() {
		t.Fatal("refunded should count as a refund")
	}
	if !PaymentStatusPartiallyRefunded.IsRefund() {
		t.Fatal("partially_refunded should count as a refund")
	}
	if PaymentStatusCompleted.IsRefund() {
		t.Fatal("completed is not a refund")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("net_banking")
	if err != nil {
		t.Fatalf("ParsePaymentMethod returned error: %v", err)
	}
	if method != PaymentMethodNetBanking {
		t.Fatalf("unexpected method %s", method)
	}
	if _, err := ParsePaymentMethod("cheque"); err == nil {
		t.Fatal("expected error for unknown payment method")
	}
}

func TestParseStaffRole(t *testing.T) {
	role, err := ParseStaffRole("admin")
	if err != nil {
		t.Fatalf("ParseStaffRole returned error: %v", err)
	}
	if role != StaffRoleAdmin {
		t.Fatalf("unexpected role %s", role)
	}
	if _, err := ParseStaffRole("owner"); err == nil {
		t.Fatal("expected error for unknown staff role")
	}
}
