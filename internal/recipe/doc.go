// Package recipe loads batch entity edits from HCL files and applies them to
// a map.
//
// A recipe is a sequence of edit blocks applied in file order:
//
//	edit "retarget_props" {
//	  where  = classname == "prop_static" && model == "models/old.mdl"
//	  delete = ["disableshadows"]
//	  set    = { model = "models/new.mdl", skin = 2 }
//	  output "OnUser1" {
//	    target = "relay"
//	    input  = "Trigger"
//	    delay  = 0.5
//	  }
//	}
//
// For every entity matching where (all entities when omitted) the edit
// deletes keys, then sets keys, then appends outputs, and finally removes the
// entity when remove is true. Set values may reference the entity's own keys
// exactly as where does; they are evaluated before any key changes.
package recipe
