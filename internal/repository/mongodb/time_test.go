package mongodb

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type timeCarrier struct {
	T flexTime `bson:"t"`
}

func TestFlexTime_DecodesNativeDateTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2030, 5, 1, 23, 30, 0, 0, time.UTC)
	raw, err := bson.Marshal(bson.M{"t": primitive.NewDateTimeFromTime(want)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var carrier timeCarrier
	if err := bson.Unmarshal(raw, &carrier); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !carrier.T.Time().Equal(want) {
		t.Errorf("expected %v, got %v", want, carrier.T.Time())
	}
}

func TestFlexTime_DecodesLegacyStrings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		want  time.Time
	}{
		{"2030-05-01T23:30:00Z", time.Date(2030, 5, 1, 23, 30, 0, 0, time.UTC)},
		{"2030-05-01T23:30:00.500Z", time.Date(2030, 5, 1, 23, 30, 0, 500_000_000, time.UTC)},
		{"2030-05-01 23:30:00", time.Date(2030, 5, 1, 23, 30, 0, 0, time.UTC)},
		{"2030-05-01", time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		raw, err := bson.Marshal(bson.M{"t": tc.value})
		if err != nil {
			t.Fatalf("marshal %q: %v", tc.value, err)
		}
		var carrier timeCarrier
		if err := bson.Unmarshal(raw, &carrier); err != nil {
			t.Fatalf("unmarshal %q: %v", tc.value, err)
		}
		if !carrier.T.Time().Equal(tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.value, tc.want, carrier.T.Time())
		}
	}
}

func TestFlexTime_NullDecodesToZero(t *testing.T) {
	t.Parallel()

	raw, err := bson.Marshal(bson.M{"t": primitive.Null{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var carrier timeCarrier
	if err := bson.Unmarshal(raw, &carrier); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !carrier.T.Time().IsZero() {
		t.Errorf("expected the zero time, got %v", carrier.T.Time())
	}
}

func TestFlexTime_RejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, value := range []any{"next tuesday", int32(42)} {
		raw, err := bson.Marshal(bson.M{"t": value})
		if err != nil {
			t.Fatalf("marshal %v: %v", value, err)
		}
		var carrier timeCarrier
		if err := bson.Unmarshal(raw, &carrier); err == nil {
			t.Errorf("expected %v to fail decoding", value)
		}
	}
}

func TestFlexTime_WritesNativeDateTime(t *testing.T) {
	t.Parallel()

	departure := time.Date(2030, 5, 1, 23, 30, 0, 0, time.UTC)
	raw, err := bson.Marshal(timeCarrier{T: flexTime(departure)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	stored, ok := doc["t"].(primitive.DateTime)
	if !ok {
		t.Fatalf("expected a native datetime on the wire, got %T", doc["t"])
	}
	if !stored.Time().UTC().Equal(departure) {
		t.Errorf("expected %v, got %v", departure, stored.Time().UTC())
	}
}
