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
genmsg converts msyt message tables into JSON dictionaries.

For each of EventFlowMsg and DemoMsg under
<path>/Message/Msg_USen.product.sarc, every .msyt file is written to
msg/<dir>/<name>.json as one object mapping "<dir>/<name>:<entry>" to the
entry. Existing files are overwritten.

Usage:
	genmsg [-out msg] [-locale USen] <path-to-messages>

Flags must come before the path; anything after it is rejected.

*/
package main
