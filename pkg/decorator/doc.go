// Package decorator rewrites a form fragment so it can be rendered once per
// block on the same page. For every input, textarea and select it:
//
//   - suffixes the id with the block's instance id and keeps label[for]
//     references in sync,
//   - replaces the numeric index segment of the name with the instance id,
//   - writes the block's stored value back into the control (value
//     attribute, textarea text, checked or selected state).
//
// Controls whose id carries a skip marker (REX_MEDIA, REX_LINK by default)
// are owned by other widgets: selects are left alone entirely, inputs and
// textareas only keep their id.
//
// Stored values and control values are compared as strings after coercion
// with block.String. Running the decorator twice over the same markup with
// different instance ids double-suffixes ids; decorate the pristine fragment
// once per block.
package decorator
