// Package domain holds the plain types shared by the market finder: reference
// data (states, carriers, business types), the user's Selection and the
// values derived from it.
package domain
