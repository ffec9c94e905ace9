// Package domain models geographic band annotations and implements the
// deterministic grouping and classification core.
//
// # Data Source
//
// Annotations arrive as user-uploaded CSV files of labeled coordinates. The
// csvio package resolves header synonyms and hands this package RawRows in
// original file order. Order matters: first-seen values win display-field
// ties and earliest-date ties, so rows are never re-sorted before grouping.
//
// # Band Conventions
//
// The world is covered by 10-degree bands: 18 latitude bands ("rings") and 36
// longitude bands ("stripes"). Every location claims one BandCategory:
//
//	ring   - priority in its latitude band
//	stripe - priority in its longitude band
//	both   - priority in both bands
//	none   - no claim
//
// Band-type columns are free text. [NormalizeBandType] tolerates arbitrary
// strings via a fixed precedence ladder, but only the four exact canonical
// words ([IsValidBandRaw]) count as explicit data during classification.
//
// # Classification
//
// Rows sharing rounded coordinates (6 decimals) and a case-folded label form
// one LocationSet. Sets with explicit band types resolve from those types:
// explicit data always wins, and conflicting strong categories merge to
// "both". Sets with none fall back to the first-to-arrive rule: bin epochs
// (the minimum earliest date per longitude and latitude bin, computed over all
// dated sets) decide which axes the set claims. This lets chronological
// datasets imply categories from dates alone.
//
// # Date Conventions
//
// Dates are heterogeneous and may predate the Common Era. "44 BCE" converts
// via astronomical year numbering to year -43; signed ISO forms permit
// negative and zero years directly. Unparseable dates degrade the epoch
// tie-break for their set instead of failing the load. See [ParseDate].
package domain
