package utils

import (
	"database/sql"
	"time"
)

func NullStringToString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func NullInt64ToPtr(ni sql.NullInt64) *uint64 {
	if !ni.Valid {
		return nil
	}
	v := uint64(ni.Int64)
	return &v
}

func NullTimeToPtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func NullTimeToString(nt sql.NullTime) string {
	if !nt.Valid {
		return ""
	}
	return nt.Time.Local().Format("2006-01-02 15:04:05")
}
