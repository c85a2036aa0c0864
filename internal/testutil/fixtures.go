package testutil

// SampleVMF is a small but complete map: nested visgroups, a six-sided world
// brush with a displacement, a hidden world brush, a brush entity, connections
// with repeated outputs, a hidden entity, cameras, cordons and blocks the
// model does not know about.
const SampleVMF = `versioninfo
{
	"editorversion" "400"
	"editorbuild" "8864"
	"mapversion" "12"
	"formatversion" "100"
	"prefab" "0"
}
visgroups
{
	visgroup
	{
		"name" "Lights"
		"visgroupid" "1"
		"color" "255 200 0"
		visgroup
		{
			"name" "Spots"
			"visgroupid" "2"
			"color" "240 130 0"
		}
	}
	visgroup
	{
		"name" "Brushes"
		"visgroupid" "3"
		"color" "0 120 255"
	}
}
viewsettings
{
	"bSnapToGrid" "1"
	"bShowGrid" "1"
	"bShowLogicalGrid" "0"
	"nGridSpacing" "64"
	"bShow3DGrid" "0"
}
world
{
	"id" "1"
	"mapversion" "12"
	"classname" "worldspawn"
	"skyname" "sky_day01_01"
	"maxpropscreenwidth" "-1"
	solid
	{
		"id" "2"
		side
		{
			"id" "1"
			"plane" "(-64 64 64) (64 64 64) (64 -64 64)"
			"material" "DEV/DEV_MEASUREGENERIC01B"
			"uaxis" "[1 0 0 0] 0.25"
			"vaxis" "[0 -1 0 0] 0.25"
			"rotation" "0"
			"lightmapscale" "16"
			"smoothing_groups" "0"
			dispinfo
			{
				"power" "2"
				"startposition" "[-64 -64 64]"
				"flags" "0"
				"elevation" "0"
				"subdiv" "0"
				normals
				{
					"row0" "0 0 1 0 0 1 0 0 1 0 0 1 0 0 1"
					"row1" "0 0 1 0 0 1 0 0 1 0 0 1 0 0 1"
				}
				allowed_verts
				{
					"10" "-1 -1 -1 -1 -1 -1 -1 -1 -1 -1"
				}
			}
		}
		side
		{
			"id" "2"
			"plane" "(-64 -64 -64) (64 -64 -64) (64 64 -64)"
			"material" "DEV/DEV_MEASUREGENERIC01B"
			"uaxis" "[1 0 0 0] 0.25"
			"vaxis" "[0 -1 0 0] 0.25"
			"rotation" "0"
			"lightmapscale" "16"
			"smoothing_groups" "0"
		}
		side
		{
			"id" "3"
			"plane" "(-64 64 64) (-64 -64 64) (-64 -64 -64)"
			"material" "DEV/DEV_MEASUREGENERIC01B"
			"uaxis" "[0 1 0 0] 0.25"
			"vaxis" "[0 0 -1 0] 0.25"
			"rotation" "0"
			"lightmapscale" "16"
			"smoothing_groups" "0"
		}
		side
		{
			"id" "4"
			"plane" "(64 64 -64) (64 -64 -64) (64 -64 64)"
			"material" "DEV/DEV_MEASUREGENERIC01B"
			"uaxis" "[0 1 0 0] 0.25"
			"vaxis" "[0 0 -1 0] 0.25"
			"rotation" "0"
			"lightmapscale" "16"
			"smoothing_groups" "0"
		}
		side
		{
			"id" "5"
			"plane" "(64 64 64) (-64 64 64) (-64 64 -64)"
			"material" "DEV/DEV_MEASUREGENERIC01B"
			"uaxis" "[1 0 0 0] 0.25"
			"vaxis" "[0 0 -1 0] 0.25"
			"rotation" "0"
			"lightmapscale" "16"
			"smoothing_groups" "0"
		}
		side
		{
			"id" "6"
			"plane" "(64 -64 -64) (-64 -64 -64) (-64 -64 64)"
			"material" "DEV/DEV_MEASUREGENERIC01B"
			"uaxis" "[1 0 0 0] 0.25"
			"vaxis" "[0 0 -1 0] 0.25"
			"rotation" "0"
			"lightmapscale" "16"
			"smoothing_groups" "0"
		}
		editor
		{
			"color" "0 180 255"
			"visgroupid" "3"
			"visgroupshown" "1"
			"visgroupautoshown" "1"
		}
	}
	hidden
	{
		solid
		{
			"id" "20"
			side
			{
				"id" "30"
				"plane" "(0 0 0) (1 0 0) (0 1 0)"
				"material" "TOOLS/TOOLSNODRAW"
			}
			editor
			{
				"color" "0 180 255"
				"visgroupid" "2"
				"visgroupshown" "0"
				"visgroupautoshown" "1"
			}
		}
	}
	group
	{
		"id" "40"
		editor
		{
			"color" "220 30 220"
			"visgroupshown" "1"
			"visgroupautoshown" "1"
		}
	}
}
entity
{
	"id" "50"
	"classname" "info_player_start"
	"angles" "0 90 0"
	"origin" "0 0 64"
	editor
	{
		"color" "0 255 0"
		"visgroupshown" "1"
		"visgroupautoshown" "1"
		"logicalpos" "[0 0]"
	}
}
entity
{
	"id" "51"
	"classname" "light_spot"
	"targetname" "spot_a"
	"_light" "255 255 255 200"
	"origin" "128 0 96"
	editor
	{
		"color" "220 30 220"
		"visgroupid" "2"
		"visgroupshown" "1"
		"visgroupautoshown" "1"
	}
}
entity
{
	"id" "52"
	"classname" "logic_relay"
	"targetname" "relay"
	"spawnflags" "0"
	"origin" "0 64 0"
	connections
	{
		"OnTrigger" "spot_a,TurnOn,,0,-1"
		"OnTrigger" "spot_a,TurnOff,,5,-1"
		"OnTrigger" "missing_door,Open,,0,1"
		"OnSpawn" "!self,Trigger,,1.5,1"
	}
	editor
	{
		"color" "220 30 220"
		"visgroupid" "1"
		"visgroupshown" "1"
		"visgroupautoshown" "1"
	}
}
entity
{
	"id" "53"
	"classname" "func_detail"
	solid
	{
		"id" "54"
		side
		{
			"id" "60"
			"plane" "(0 0 0) (0 1 0) (1 0 0)"
			"material" "BRICK/BRICKWALL001A"
		}
	}
	editor
	{
		"color" "0 180 0"
		"visgroupshown" "1"
		"visgroupautoshown" "1"
	}
}
hidden
{
	entity
	{
		"id" "55"
		"classname" "prop_static"
		"model" "models/props/crate.mdl"
		"origin" "256 0 0"
		customdata
		{
			"note" "kept"
		}
	}
}
cameras
{
	"activecamera" "0"
	camera
	{
		"position" "[0 -512 128]"
		"look" "[0 0 0]"
	}
}
cordons
{
	"active" "0"
	cordon
	{
		"name" "cordon"
		"active" "1"
		box
		{
			"mins" "(-512 -512 -512)"
			"maxs" "(512 512 512)"
		}
	}
}
toolsettings
{
	"grid" "custom"
}
`

// ConnectionsVMF is a minimal map whose entities form an I/O chain with one
// dangling target.
const ConnectionsVMF = `entity
{
	"id" "1"
	"classname" "logic_auto"
	connections
	{
		"OnMapSpawn" "relay,Trigger,,0,-1"
	}
}
entity
{
	"id" "2"
	"classname" "logic_relay"
	"targetname" "relay"
	connections
	{
		"OnTrigger" "door,Open,,0,-1"
		"OnTrigger" "ghost,Kill,,0,-1"
		"OnTrigger" "!activator,Use,,0,-1"
	}
}
entity
{
	"id" "3"
	"classname" "func_door"
	"targetname" "door"
}
`
