package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// flexTime decodes a timestamp that may have been persisted either as a
// native BSON datetime or as a loosely-typed string. Writes always emit a
// native datetime, so the string path only exists for legacy rows.
type flexTime time.Time

// Accepted layouts for string-typed timestamps, most specific first.
var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t flexTime) Time() time.Time {
	return time.Time(t)
}

func (t flexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(time.Time(t))
}

func (t *flexTime) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	switch bt {
	case bson.TypeDateTime:
		ms, _, ok := bsoncore.ReadDateTime(data)
		if !ok {
			return fmt.Errorf("malformed bson datetime")
		}
		*t = flexTime(time.UnixMilli(ms).UTC())
		return nil
	case bson.TypeString:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("malformed bson string")
		}
		parsed, err := parseFlexTime(s)
		if err != nil {
			return err
		}
		*t = flexTime(parsed)
		return nil
	case bson.TypeNull:
		*t = flexTime(time.Time{})
		return nil
	default:
		return fmt.Errorf("cannot decode %s into a timestamp", bt)
	}
}

func parseFlexTime(s string) (time.Time, error) {
	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
