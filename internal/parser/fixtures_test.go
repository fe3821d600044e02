package parser_test

const admittedDecision = `
    CONSILIUL NAȚIONAL DE SOLUȚIONARE A CONTESTAȚIILOR

    Decizia Nr. 1234/C1/567
    Data: 15 ianuarie 2024

    Contestator: S.C. CONSTRUCTII MODERNE S.R.L.
    Autoritate contractantă: Primăria Municipiului București

    În fapt:
    Contestatorul a participat la procedura de achiziție publică având ca obiect
    "Lucrări de reabilitare drumuri" - CPV 45233140-2.

    S-au invocat următoarele critici:
    - D1: Cerințe de calificare restrictive
    - D3: Criterii de atribuire subiective

    Analizând documentația, Consiliul constată că:

    Conform art. 210 din Legea 98/2016, autoritatea contractantă avea obligația
    de a asigura o concurență reală.

    PENTRU ACESTE MOTIVE

    CONSILIUL NAȚIONAL DE SOLUȚIONARE A CONTESTAȚIILOR

    DECIDE:

    Admite contestația formulată de S.C. CONSTRUCTII MODERNE S.R.L.
`

const rejectedDecision = `
    CONSILIUL NAȚIONAL DE SOLUȚIONARE A CONTESTAȚIILOR

    Decizia Nr. 5678/C2/890
    Data: 20 februarie 2024

    Contestator: S.C. TECH SOLUTIONS S.R.L.
    Autoritate contractantă: Consiliul Județean Constanța

    În fapt:
    Contestatorul a participat la procedura de achiziție publică având ca obiect
    "Servicii de consultanță IT" - CPV 72220000-3.

    Critica R2: Evaluarea ofertei tehnice

    Analizând documentația, Consiliul constată că autoritatea contractantă
    a respectat prevederile legale.

    DECIDE:

    Respinge, ca nefondată, contestația formulată de S.C. TECH SOLUTIONS S.R.L.
`

const partialDecision = `
    Decizia Nr. 3855/C8/4446
    din 10 decembrie 2025

    Contestator: ALFA SERV S.R.L., în contradictoriu cu
    Intimat: Spitalul Județean de Urgență Bacău
    Intervenient: BETA CATERING S.A.
    Intervenient: GAMA FOOD S.R.L.

    Contestatorul solicită anularea raportului procedurii pentru lotul 2
    (CPV 55520000-1), invocând art. 215 alin. (5) din Legea nr. 98/2016.

    Autoritatea contractantă a formulat punct de vedere prin care solicită respingerea.

    Cerere de intervenție a fost formulată de BETA CATERING S.A.

    Analizând actele și lucrările dosarului, Consiliul reține că art. 215 alin. (5) din Legea nr. 98/2016
    nu a fost respectat.

    CONSILIUL DECIDE:

    Admite, în parte, contestația formulată de ALFA SERV S.R.L.
    Respinge, ca nefondată, cererea de intervenție.
`
