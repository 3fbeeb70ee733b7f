// SPDX-License-Identifier: GPL-2.0-or-later

// Package cvar is the registry of named options. Values are kept as strings
// and converted on access.
package cvar

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

var (
	mu         sync.RWMutex
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	callback CallbackFunc
	name     string
	help     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
}

// All returns the registered cvars in registration order.
func All() []*Cvar {
	mu.RLock()
	defer mu.RUnlock()
	return append([]*Cvar(nil), cvarArray...)
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

// SetHelp sets the one line description shown in option listings.
func (cv *Cvar) SetHelp(h string) *Cvar {
	cv.help = h
	return cv
}

func (cv *Cvar) Help() string {
	return cv.help
}

func (cv *Cvar) SetByString(s string) {
	mu.Lock()
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(s, 32)
	cv.value = float32(pf)
	mu.Unlock()
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	mu.RLock()
	defer mu.RUnlock()
	return cv.stringValue
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) Value() float32 {
	mu.RLock()
	defer mu.RUnlock()
	return cv.value
}

// Int returns the value truncated to an integer.
func (cv *Cvar) Int() int {
	s := cv.String()
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return int(cv.Value())
}

func (cv *Cvar) Bool() bool {
	s := cv.String()
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s != "0" && s != ""
}

func Get(name string) (*Cvar, bool) {
	mu.RLock()
	defer mu.RUnlock()
	cv, ok := cvarByName[name]
	return cv, ok
}

// Set changes the value of a registered cvar.
func Set(name, value string) error {
	cv, ok := Get(name)
	if !ok {
		return errors.Errorf("unknown option %q", name)
	}
	cv.SetByString(value)
	return nil
}

func Register(name, value string) (*Cvar, error) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := cvarByName[name]; ok {
		return nil, errors.Errorf("can't register variable %s, already defined", name)
	}
	pf, _ := strconv.ParseFloat(value, 32)
	cv := &Cvar{
		name:         name,
		stringValue:  value,
		value:        float32(pf),
		defaultValue: value,
	}
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	return cv, nil
}

func MustRegister(name, value string) *Cvar {
	cv, err := Register(name, value)
	if err != nil {
		panic(err)
	}
	return cv
}

// ResetAll sets every cvar back to its default.
func ResetAll() {
	for _, cv := range All() {
		cv.Reset()
	}
}
