// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abi

/*
#include <stdlib.h>

typedef void (*gomtest_umat_t)(double*, double*, double*, double*, double*, double*, double*,
	double*, double*, double*, const double*, const double*, const double*, const double*,
	const double*, const double*, const double*, const double*, const char*, const int*,
	const int*, const int*, const int*, const double*, const int*, const double*,
	const double*, double*, const double*, const double*, const double*, const int*,
	const int*, const int*, const int*, const int*, int*, int);

static void gomtest_call_umat(void* f,
	double* stress, double* statev, double* ddsdde, double* sse, double* spd, double* scd,
	double* rpl, double* ddsddt, double* drplde, double* drpldt, const double* stran,
	const double* dstran, const double* time, const double* dtime, const double* temp,
	const double* dtemp, const double* predef, const double* dpred, const char* cmname,
	const int* ndi, const int* nshr, const int* ntens, const int* nstatv, const double* props,
	const int* nprops, const double* coords, const double* drot, double* pnewdt,
	const double* celent, const double* dfgrd0, const double* dfgrd1, const int* noel,
	const int* npt, const int* layer, const int* kspt, const int* kstep, int* kinc, int len) {
	((gomtest_umat_t)f)(stress, statev, ddsdde, sse, spd, scd, rpl, ddsddt, drplde, drpldt,
		stran, dstran, time, dtime, temp, dtemp, predef, dpred, cmname, ndi, nshr, ntens,
		nstatv, props, nprops, coords, drot, pnewdt, celent, dfgrd0, dfgrd1, noel, npt, layer,
		kspt, kstep, kinc, len);
}

typedef void (*gomtest_aster_t)(double*, double*, double*, const double*, const double*,
	const double*, const double*, const double*, const double*, const double*, const long*,
	const long*, const double*, const long*, const double*, double*, const long*);

static void gomtest_call_aster(void* f,
	double* stress, double* statev, double* ddsoe, const double* stran, const double* dstran,
	const double* dtime, const double* temp, const double* dtemp, const double* predef,
	const double* dpred, const long* ntens, const long* nstatv, const double* props,
	const long* nprops, const double* drot, double* pnewdt, const long* nummod) {
	((gomtest_aster_t)f)(stress, statev, ddsoe, stran, dstran, dtime, temp, dtemp, predef,
		dpred, ntens, nstatv, props, nprops, drot, pnewdt, nummod);
}

typedef void (*gomtest_cyrano_t)(const int*, const double*, const double*, double*,
	const double*, const double*, const double*, const double*, const double*, const int*,
	const double*, const double*, double*, const int*, double*, const int*, int*);

static void gomtest_call_cyrano(void* f,
	const int* ntens, const double* dtime, const double* drot, double* ddsdde,
	const double* stran, const double* dstran, const double* temp, const double* dtemp,
	const double* props, const int* nprops, const double* predef, const double* dpred,
	double* statev, const int* nstatv, double* stress, const int* ndi, int* kinc) {
	((gomtest_cyrano_t)f)(ntens, dtime, drot, ddsdde, stran, dstran, temp, dtemp, props,
		nprops, predef, dpred, statev, nstatv, stress, ndi, kinc);
}
*/
import "C"

import "unsafe"

// zeros backs empty optional arrays
var zeros [9]C.double

// dp returns a C pointer to the first entry of s (or to a zero buffer if s is empty)
func dp(s []float64) *C.double {
	if len(s) == 0 {
		return &zeros[0]
	}
	return (*C.double)(unsafe.Pointer(&s[0]))
}

// UmatArgs holds the arguments of the umat (Abaqus) calling convention, also used by castem
type UmatArgs struct {
	Stress []float64 // [ntens] stress, in/out
	Statev []float64 // [nstatv] internal state variables, in/out
	Ddsdde []float64 // [ntens*ntens] tangent operator, column-major, in/out
	Sse    float64   // specific elastic strain energy
	Spd    float64   // plastic dissipation
	Scd    float64   // creep dissipation
	Rpl    float64   // volumetric heat generation
	Ddsddt []float64 // [ntens] stress variation w.r.t temperature
	Drplde []float64 // [ntens] variation of rpl w.r.t strain
	Drpldt float64   // variation of rpl w.r.t temperature
	Stran  []float64 // [ntens] strain at the beginning of the step
	Dstran []float64 // [ntens] strain increment
	Time   [2]float64
	Dtime  float64
	Temp   float64
	Dtemp  float64
	Predef []float64 // external state variables (without temperature)
	Dpred  []float64 // increments of external state variables
	Cmname string
	Ndi    int
	Nshr   int
	Ntens  int
	Nstatv int
	Props  []float64
	Coords [3]float64
	Drot   []float64 // [9] rotation matrix, column-major
	Pnewdt float64   // suggested time step ratio; output
	Celent float64
	Dfgrd0 []float64 // [9] deformation gradient at the beginning of the step, column-major
	Dfgrd1 []float64 // [9] deformation gradient at the end of the step, column-major
	Noel   int
	Npt    int
	Layer  int
	Kspt   int
	Kstep  int
	Kinc   int // output
}

// CallUmat calls f with the umat calling convention; scalar outputs are copied back into a
func CallUmat(f unsafe.Pointer, a *UmatArgs) {
	sse, spd, scd, rpl := C.double(a.Sse), C.double(a.Spd), C.double(a.Scd), C.double(a.Rpl)
	drpldt := C.double(a.Drpldt)
	time := [2]C.double{C.double(a.Time[0]), C.double(a.Time[1])}
	dtime, temp, dtemp := C.double(a.Dtime), C.double(a.Temp), C.double(a.Dtemp)
	ndi, nshr, ntens, nstatv := C.int(a.Ndi), C.int(a.Nshr), C.int(a.Ntens), C.int(a.Nstatv)
	nprops := C.int(len(a.Props))
	coords := [3]C.double{C.double(a.Coords[0]), C.double(a.Coords[1]), C.double(a.Coords[2])}
	pnewdt, celent := C.double(a.Pnewdt), C.double(a.Celent)
	noel, npt, layer, kspt, kstep, kinc := C.int(a.Noel), C.int(a.Npt), C.int(a.Layer), C.int(a.Kspt), C.int(a.Kstep), C.int(a.Kinc)
	cmname := C.CString(a.Cmname)
	defer C.free(unsafe.Pointer(cmname))
	C.gomtest_call_umat(f,
		dp(a.Stress), dp(a.Statev), dp(a.Ddsdde), &sse, &spd, &scd, &rpl, dp(a.Ddsddt),
		dp(a.Drplde), &drpldt, dp(a.Stran), dp(a.Dstran), &time[0], &dtime, &temp, &dtemp,
		dp(a.Predef), dp(a.Dpred), cmname, &ndi, &nshr, &ntens, &nstatv, dp(a.Props), &nprops,
		&coords[0], dp(a.Drot), &pnewdt, &celent, dp(a.Dfgrd0), dp(a.Dfgrd1), &noel, &npt,
		&layer, &kspt, &kstep, &kinc, C.int(len(a.Cmname)))
	a.Sse, a.Spd, a.Scd, a.Rpl = float64(sse), float64(spd), float64(scd), float64(rpl)
	a.Drpldt = float64(drpldt)
	a.Pnewdt = float64(pnewdt)
	a.Kinc = int(kinc)
}

// AsterArgs holds the arguments of the aster calling convention
type AsterArgs struct {
	Stress []float64
	Statev []float64
	Ddsoe  []float64 // [ntens*ntens] tangent operator, column-major; entry 0 holds the request on input
	Stran  []float64
	Dstran []float64
	Dtime  float64
	Temp   float64
	Dtemp  float64
	Predef []float64
	Dpred  []float64
	Ntens  int
	Nstatv int
	Props  []float64
	Drot   []float64
	Pnewdt float64
	Nummod int
}

// CallAster calls f with the aster calling convention
func CallAster(f unsafe.Pointer, a *AsterArgs) {
	dtime, temp, dtemp := C.double(a.Dtime), C.double(a.Temp), C.double(a.Dtemp)
	ntens, nstatv, nprops := C.long(a.Ntens), C.long(a.Nstatv), C.long(len(a.Props))
	pnewdt, nummod := C.double(a.Pnewdt), C.long(a.Nummod)
	C.gomtest_call_aster(f,
		dp(a.Stress), dp(a.Statev), dp(a.Ddsoe), dp(a.Stran), dp(a.Dstran), &dtime, &temp,
		&dtemp, dp(a.Predef), dp(a.Dpred), &ntens, &nstatv, dp(a.Props), &nprops, dp(a.Drot),
		&pnewdt, &nummod)
	a.Pnewdt = float64(pnewdt)
}

// CyranoArgs holds the arguments of the cyrano calling convention
type CyranoArgs struct {
	Ntens  int
	Dtime  float64
	Drot   []float64
	Ddsdde []float64 // entry 0 holds the request on input
	Stran  []float64
	Dstran []float64
	Temp   float64
	Dtemp  float64
	Props  []float64
	Predef []float64
	Dpred  []float64
	Statev []float64
	Nstatv int
	Stress []float64
	Ndi    int
	Kinc   int // output
}

// CallCyrano calls f with the cyrano calling convention
func CallCyrano(f unsafe.Pointer, a *CyranoArgs) {
	ntens, nprops, nstatv, ndi := C.int(a.Ntens), C.int(len(a.Props)), C.int(a.Nstatv), C.int(a.Ndi)
	dtime, temp, dtemp := C.double(a.Dtime), C.double(a.Temp), C.double(a.Dtemp)
	kinc := C.int(a.Kinc)
	C.gomtest_call_cyrano(f,
		&ntens, &dtime, dp(a.Drot), dp(a.Ddsdde), dp(a.Stran), dp(a.Dstran), &temp, &dtemp,
		dp(a.Props), &nprops, dp(a.Predef), dp(a.Dpred), dp(a.Statev), &nstatv, dp(a.Stress),
		&ndi, &kinc)
	a.Kinc = int(kinc)
}
