// flowdump-go: event flow and message dump suite
// Copyright (C) 2018  Yishen Miao
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

/*
Package flowdump holds the data-mining converters for event flow and message
resources.

Two commands are provided:

genmsg walks the localized message tree and writes one JSON dictionary per
msyt file, keyed by "<relative path>:<entry key>".

genflow reads the resource index CSV, decodes every event flow binary it
lists through an external decoder, and writes one JSON flowchart per flow plus
an __INDEX__.json listing every flow with its entry points and description.

Usage:
	genmsg <path-to-messages>
	genflow --content-dir DIR --resource-csv FILE --dest-dir DIR \
		[--demo-list FILE] [--actor-names FILE] [--decoder CMD]

*/
package flowdump
