package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Write marshals val (typically a pointer to a Request or Response payload
// struct) by reflecting over its exported fields in declaration order.
// Fields tagged `wire:"omit"` are skipped, as are fields whose name starts
// with a lowercase letter (unexported).
func Write(w io.Writer, val reflect.Value) error {
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		return Write(w, val.Elem())
	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			field := val.Type().Field(i)
			name := field.Name
			if name[0:1] == strings.ToLower(name[0:1]) {
				continue
			}
			if field.Tag.Get("wire") == "omit" {
				continue
			}
			if err := Write(w, val.Field(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Slice:
		if val.Type().Elem().Kind() == reflect.Uint8 { // []byte is BYTES, not ARRAY
			_, err := w.Write(PutBytes(nil, val.Bytes()))
			return err
		}
		if val.IsNil() {
			return binary.Write(w, ord, int32(-1))
		}
		if err := binary.Write(w, ord, int32(val.Len())); err != nil {
			return err
		}
		for i := 0; i < val.Len(); i++ {
			if err := Write(w, val.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.String:
		_, err := w.Write(PutString(nil, val.String()))
		return err
	case reflect.Int8:
		return binary.Write(w, ord, int8(val.Int()))
	case reflect.Int16:
		return binary.Write(w, ord, int16(val.Int()))
	case reflect.Int32:
		return binary.Write(w, ord, int32(val.Int()))
	case reflect.Int64:
		return binary.Write(w, ord, int64(val.Int()))
	case reflect.Uint32:
		return binary.Write(w, ord, uint32(val.Uint()))
	case reflect.Bool:
		if val.Bool() {
			_, err := w.Write([]byte{1})
			return err
		}
		_, err := w.Write([]byte{0})
		return err
	}
	return fmt.Errorf("wire: unsupported kind %s", val.Kind())
}

// Read unmarshals into val the inverse of Write.
func Read(r io.Reader, val reflect.Value) error {
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		return Read(r, val.Elem())
	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			field := val.Type().Field(i)
			name := field.Name
			if name[0:1] == strings.ToLower(name[0:1]) {
				continue
			}
			if field.Tag.Get("wire") == "omit" {
				continue
			}
			if err := Read(r, val.Field(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Slice:
		typ := val.Type().Elem()
		var n int32
		if err := binary.Read(r, ord, &n); err != nil {
			return fmt.Errorf("error reading array length: %w", err)
		}
		if typ.Kind() == reflect.Uint8 { // []byte is BYTES
			if n == -1 {
				val.SetBytes(nil)
				return nil
			}
			b := make([]byte, n)
			if _, err := io.ReadFull(r, b); err != nil {
				return fmt.Errorf("error reading bytes body: %w", err)
			}
			val.SetBytes(b)
			return nil
		}
		if n == -1 {
			return nil // nil slice
		}
		val.Set(reflect.MakeSlice(val.Type(), 0, int(n)))
		for i := 0; i < int(n); i++ {
			element := reflect.New(typ).Elem()
			if err := Read(r, element); err != nil {
				return fmt.Errorf("error parsing array element: %w", err)
			}
			val.Set(reflect.Append(val, element))
		}
		return nil
	case reflect.String:
		var n int16
		if err := binary.Read(r, ord, &n); err != nil {
			return fmt.Errorf("error reading string length: %w", err)
		}
		if n == -1 {
			val.SetString("")
			return nil
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return fmt.Errorf("error reading string body: %w", err)
		}
		val.SetString(string(b))
		return nil
	case reflect.Int8:
		var i int8
		if err := binary.Read(r, ord, &i); err != nil {
			return fmt.Errorf("error reading int8: %w", err)
		}
		val.SetInt(int64(i))
		return nil
	case reflect.Int16:
		var i int16
		if err := binary.Read(r, ord, &i); err != nil {
			return fmt.Errorf("error reading int16: %w", err)
		}
		val.SetInt(int64(i))
		return nil
	case reflect.Int32:
		var i int32
		if err := binary.Read(r, ord, &i); err != nil {
			return fmt.Errorf("error reading int32: %w", err)
		}
		val.SetInt(int64(i))
		return nil
	case reflect.Int64:
		var i int64
		if err := binary.Read(r, ord, &i); err != nil {
			return fmt.Errorf("error reading int64: %w", err)
		}
		val.SetInt(i)
		return nil
	case reflect.Uint32:
		var i uint32
		if err := binary.Read(r, ord, &i); err != nil {
			return fmt.Errorf("error reading uint32: %w", err)
		}
		val.SetUint(uint64(i))
		return nil
	case reflect.Bool:
		b := make([]byte, 1)
		if _, err := io.ReadFull(r, b); err != nil {
			return fmt.Errorf("error reading bool: %w", err)
		}
		val.SetBool(b[0] != 0)
		return nil
	}
	return fmt.Errorf("wire: unsupported kind %s", val.Kind())
}
