// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import "testing"

const entityLump = `{
"world_maxs" "1024 1024 512"
"skyname" "sky_day01_01"
"classname" "worldspawn"
}
{
"origin" "0 0 64"
"classname" "info_player_start"
"targetname" "spawn {1}"
}
`

func TestParseEntities(t *testing.T) {
	es := ParseEntities([]byte(entityLump))
	if len(es) != 2 {
		t.Fatalf("ParseEntities got %d entities, want 2", len(es))
	}
	if n, _ := es[0].Name(); n != "worldspawn" {
		t.Errorf("first entity is %q, want worldspawn", n)
	}
	if v, ok := es[1].Property("targetname"); !ok || v != "spawn {1}" {
		t.Errorf("targetname = %q,%v", v, ok)
	}
	kvs := es[0].KeyValues()
	want := []string{"world_maxs", "skyname", "classname"}
	if len(kvs) != len(want) {
		t.Fatalf("KeyValues() has len %d, want %d", len(kvs), len(want))
	}
	for i := range want {
		if kvs[i].Key != want[i] {
			t.Errorf("KeyValues()[%d] = %q, want %q", i, kvs[i].Key, want[i])
		}
	}
}

func TestParseEntitiesBadInput(t *testing.T) {
	if es := ParseEntities([]byte("}")); es != nil {
		t.Errorf("ParseEntities of bad input = %v, want nil", es)
	}
}
