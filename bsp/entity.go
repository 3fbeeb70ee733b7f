// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"
)

type KeyValue struct {
	Key   string
	Value string
}

// Entity keeps its key values in lump order so they can be written back
// unchanged.
type Entity struct {
	properties map[string]int
	kvs        []KeyValue
}

func NewEntity(p []byte) *Entity {
	e := &Entity{properties: make(map[string]int)}
	// parse the entity line by line
	lines := bytes.Split(p, []byte("\n"))
	for _, l := range lines {
		// look for something of the form
		// "key" "value"
		q := bytes.IndexByte(l, '"')
		if q == -1 {
			continue
		}
		r := l[q+1:]
		q = bytes.IndexByte(r, '"')
		if q == -1 {
			continue
		}
		key := string(r[:q])
		r = r[q+1:]
		q = bytes.IndexByte(r, '"')
		if q == -1 {
			continue
		}
		r = r[q+1:]
		q = bytes.IndexByte(r, '"')
		if q == -1 {
			continue
		}
		e.set(key, string(r[:q]))
	}
	return e
}

func (e *Entity) set(key, value string) {
	if i, ok := e.properties[key]; ok {
		e.kvs[i].Value = value
		return
	}
	e.properties[key] = len(e.kvs)
	e.kvs = append(e.kvs, KeyValue{key, value})
}

func (e *Entity) Property(name string) (string, bool) {
	i, ok := e.properties[name]
	if !ok {
		return "", false
	}
	return e.kvs[i].Value, true
}

func (e *Entity) Name() (string, bool) {
	return e.Property("classname")
}

// KeyValues returns the key values in lump order.
func (e *Entity) KeyValues() []KeyValue {
	return e.kvs
}

func ParseEntities(data []byte) []*Entity {
	/*
		The data looks like:
		{
		"classname" "worldspawn"
		"skyname" "sky_day01_01"
		}
		{
		"origin" "0 0 0"
		"classname" "info_player_start"
		}
	*/
	// First split the entities
	es := []*Entity{}
	var ess [][]byte
	var ob, q int
	start := -1
	for i, b := range data {
		switch b {
		case '{':
			if q != 0 {
				break
			}
			if start == -1 {
				start = i
			} else {
				ob++
			}
		case '}':
			if q != 0 {
				break
			}
			if start == -1 {
				// Bad input
				return nil
			}
			if ob == 0 {
				ess = append(ess, data[start:i+1])
				start = -1
			} else {
				ob--
			}
		case '"':
			if q == 0 {
				q++
			} else {
				q--
			}
		}
	}
	for _, e := range ess {
		es = append(es, NewEntity(e))
	}
	return es
}
