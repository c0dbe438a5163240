// Package peak extracts and ranks the peaks of a processed spectrum and
// reduces them to a single dominant-frequency bin.
//
// Extraction runs in four steps:
//
//  1. [Candidates]: bins that no neighbor within ±width strictly exceeds
//  2. [Rank]: stable sort by descending intensity
//  3. [Select]: candidates above the bass boundary whose intensity exceeds
//     the acceptance ratio times the strongest non-bass candidate
//  4. [Dominant]: rank-weighted average bin of the selected peaks
//
// [Extract] bundles the steps.
package peak
